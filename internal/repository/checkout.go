package repository

import (
	"context"
	"sparemart/internal/model"

	"gorm.io/gorm"
)

type CheckoutRepository interface {
	Create(ctx context.Context, session *model.CheckoutSession) error
	FindByID(ctx context.Context, checkoutID string) (*model.CheckoutSession, error)
}

type checkoutRepoImpl struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepoImpl{
		db: db,
	}
}

func (r *checkoutRepoImpl) Create(ctx context.Context, session *model.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *checkoutRepoImpl) FindByID(ctx context.Context, checkoutID string) (*model.CheckoutSession, error) {
	var session model.CheckoutSession
	err := r.db.WithContext(ctx).
		Where("id = ?", checkoutID).
		First(&session).Error

	if err != nil {
		return nil, err
	}

	return &session, nil
}
