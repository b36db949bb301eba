package service

import (
	"context"
	"sparemart/internal/model"
	"sparemart/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// one connection: every :memory: connection is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.CartItem{},
		&model.CheckoutSession{},
		&model.Order{},
	))

	return db
}

func TestPriceResolver_VariableProduct(t *testing.T) {
	db := testDB(t)
	products := repository.NewProductRepository(db)
	resolver := NewPriceResolver(products, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &model.Product{
		ID:         "P-VAR",
		Title:      "Brake Pad",
		IsVariable: true,
		Variations: []model.Variation{
			{Attributes: map[string]string{"Color": "Black", "Quality": "A"}, Price: "100", SalePrice: "90"},
			{Attributes: map[string]string{"Color": "White", "Quality": "B"}, Price: "120"},
		},
	}))

	t.Run("matching variation uses sale price", func(t *testing.T) {
		lines, err := resolver.Resolve(ctx, []model.CheckoutItem{
			{ProductID: "P-VAR", Quantity: 2, Attributes: map[string]string{"Color": "Black", "Quality": "A"}},
		})
		require.NoError(t, err)
		require.Len(t, lines, 1)

		assert.Equal(t, 90.0, lines[0].Price)
		assert.Equal(t, 180.0, lines[0].Total)
		assert.Equal(t, "Brake Pad", lines[0].Title)
	})

	t.Run("variation without sale price uses base price", func(t *testing.T) {
		lines, err := resolver.Resolve(ctx, []model.CheckoutItem{
			{ProductID: "P-VAR", Quantity: 1, Attributes: map[string]string{"Color": "White", "Quality": "B"}},
		})
		require.NoError(t, err)
		require.Len(t, lines, 1)

		assert.Equal(t, 120.0, lines[0].Price)
	})

	t.Run("unspecified attribute is a wildcard", func(t *testing.T) {
		lines, err := resolver.Resolve(ctx, []model.CheckoutItem{
			{ProductID: "P-VAR", Quantity: 1, Attributes: map[string]string{"Color": "White"}},
		})
		require.NoError(t, err)
		require.Len(t, lines, 1)

		assert.Equal(t, 120.0, lines[0].Price)
	})

	t.Run("non-existent combination resolves to zero", func(t *testing.T) {
		lines, err := resolver.Resolve(ctx, []model.CheckoutItem{
			{ProductID: "P-VAR", Quantity: 3, Attributes: map[string]string{"Color": "Red", "Quality": "C"}},
		})
		require.NoError(t, err)
		require.Len(t, lines, 1)

		assert.Equal(t, 0.0, lines[0].Price)
		assert.Equal(t, 0.0, lines[0].Total)
	})
}

func TestPriceResolver_SimpleProduct(t *testing.T) {
	db := testDB(t)
	products := repository.NewProductRepository(db)
	resolver := NewPriceResolver(products, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &model.Product{
		ID: "P-SALE", Title: "Oil Filter", Price: "250", SalePrice: "199",
	}))
	require.NoError(t, products.Create(ctx, &model.Product{
		ID: "P-BASE", Title: "Air Filter", Price: "300",
	}))
	require.NoError(t, products.Create(ctx, &model.Product{
		ID: "P-BAD", Title: "Mystery Part", Price: "not-a-number",
	}))

	lines, err := resolver.Resolve(ctx, []model.CheckoutItem{
		{ProductID: "P-SALE", Quantity: 1},
		{ProductID: "P-BASE", Quantity: 2},
		{ProductID: "P-BAD", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, 199.0, lines[0].Price)
	assert.Equal(t, 300.0, lines[1].Price)
	assert.Equal(t, 600.0, lines[1].Total)
	// unparseable price clamps to zero
	assert.Equal(t, 0.0, lines[2].Price)
}

func TestPriceResolver_DroppedLines(t *testing.T) {
	db := testDB(t)
	products := repository.NewProductRepository(db)
	resolver := NewPriceResolver(products, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &model.Product{
		ID: "P-OK", Title: "Spark Plug", Price: "50",
	}))

	lines, err := resolver.Resolve(ctx, []model.CheckoutItem{
		{ProductID: "", Quantity: 1},
		{ProductID: "P-GONE", Quantity: 1},
		{ProductID: "P-OK", Quantity: 1},
	})
	require.NoError(t, err)

	// missing product id and unknown product are both dropped silently
	require.Len(t, lines, 1)
	assert.Equal(t, "P-OK", lines[0].ProductID)
}
