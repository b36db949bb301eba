package service

import (
	"context"
	"errors"
	"fmt"
	"sparemart/internal/model"
	"sparemart/internal/repository"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PriceResolver recomputes per-line pricing from the live catalog. Client
// totals on the checkout session are never trusted.
type PriceResolver struct {
	products repository.ProductRepository
	log      *zap.Logger
}

func NewPriceResolver(products repository.ProductRepository, log *zap.Logger) *PriceResolver {
	return &PriceResolver{
		products: products,
		log:      log,
	}
}

// Resolve prices every checkout line against the catalog. Lines without a
// product id and lines whose product no longer exists are dropped (logged
// at warn); a catalog read failure aborts the whole resolution.
func (r *PriceResolver) Resolve(ctx context.Context, items []model.CheckoutItem) ([]model.ResolvedProductLine, error) {
	lines := make([]model.ResolvedProductLine, 0, len(items))

	for _, item := range items {
		if item.ProductID == "" {
			r.log.Warn("dropping checkout line without product id")
			continue
		}

		product, err := r.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				r.log.Warn("dropping checkout line, product not in catalog",
					zap.String("product_id", item.ProductID))
				continue
			}
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}

		price := r.unitPrice(product, item.Attributes)
		lines = append(lines, model.ResolvedProductLine{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			Price:      price,
			Total:      price * float64(item.Quantity),
			Title:      product.Title,
			Attributes: item.Attributes,
		})
	}

	return lines, nil
}

func (r *PriceResolver) unitPrice(product *model.Product, selected map[string]string) float64 {
	if !product.IsVariable {
		return salePriceOrBase(product.SalePrice, product.Price)
	}

	for _, variation := range product.Variations {
		if variationMatches(variation, selected) {
			return salePriceOrBase(variation.SalePrice, variation.Price)
		}
	}

	// No variation matched the selection. Price resolves to zero; flagged
	// at warn so these orders surface for review.
	r.log.Warn("no variation matched, pricing line at zero",
		zap.String("product_id", product.ID),
		zap.Any("attributes", selected))
	return 0
}

// variationMatches reports whether the variation satisfies every attribute
// actually specified on the line. Unspecified attributes are wildcards,
// not constraints.
func variationMatches(variation model.Variation, selected map[string]string) bool {
	for key, want := range selected {
		if want == "" {
			continue
		}
		if variation.Attributes[key] != want {
			return false
		}
	}
	return true
}

func salePriceOrBase(salePrice, basePrice string) float64 {
	if sale := parseMoney(salePrice); sale > 0 {
		return sale
	}
	return parseMoney(basePrice)
}

// parseMoney clamps unparseable or negative amounts to 0.
func parseMoney(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
