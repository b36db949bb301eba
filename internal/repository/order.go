package repository

import (
	"context"
	"sparemart/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShippingUpdate is the merge-write payload of the shipment dispatcher.
// Only the carrier channel of the order is touched.
type ShippingUpdate struct {
	Status      string
	OrderID     string
	ShipmentID  string
	RawResponse string
	Error       string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	// CreateIfAbsent is the commit point of finalization. It reports
	// created=false when an order with the same id already exists, so a
	// lost duplicate race is rejected by the store rather than by
	// application logic.
	CreateIfAbsent(ctx context.Context, order *model.Order) (created bool, err error)
	UpdateShipping(ctx context.Context, orderID string, update ShippingUpdate) error
	SetInvoice(ctx context.Context, orderID, invoiceURL string, generatedAt time.Time) error
	SetPostProcessError(ctx context.Context, orderID, message string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) CreateIfAbsent(ctx context.Context, order *model.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(order)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) UpdateShipping(ctx context.Context, orderID string, update ShippingUpdate) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"shipping_status":     update.Status,
			"carrier_order_id":    update.OrderID,
			"carrier_shipment_id": update.ShipmentID,
			"carrier_response":    update.RawResponse,
			"carrier_error":       update.Error,
			"updated_at":          time.Now(),
		}).Error
}

func (r *orderRepoImpl) SetInvoice(ctx context.Context, orderID, invoiceURL string, generatedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"invoice_url":          invoiceURL,
			"invoice_generated_at": generatedAt,
			"updated_at":           time.Now(),
		}).Error
}

func (r *orderRepoImpl) SetPostProcessError(ctx context.Context, orderID, message string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"post_process_error": message,
			"updated_at":         time.Now(),
		}).Error
}
