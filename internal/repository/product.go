package repository

import (
	"context"
	"sparemart/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	// IncrementOrderCounts bumps the order counter of every listed product
	// by its quantity in one all-or-nothing transaction. Increments are
	// commutative, so concurrent finalizations never conflict here.
	IncrementOrderCounts(ctx context.Context, quantities map[string]int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) IncrementOrderCounts(ctx context.Context, quantities map[string]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for productID, qty := range quantities {
			err := tx.Model(&model.Product{}).
				Where("id = ?", productID).
				UpdateColumn("order_count", gorm.Expr("order_count + ?", qty)).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
