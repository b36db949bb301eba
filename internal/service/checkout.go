package service

import (
	"context"
	"errors"
	"fmt"
	"sparemart/internal/dto"
	"sparemart/internal/model"
	"sparemart/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutService turns a checkout session into a durable order. One
// pipeline serves both payment modes; only the verification strategy
// differs.
type CheckoutService interface {
	FinalizeCOD(ctx context.Context, checkoutID string) (*dto.FinalizeResponse, error)
	FinalizeOnline(ctx context.Context, callback *dto.PaymentCallback) (*dto.FinalizeResponse, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
}

type checkoutServiceImpl struct {
	checkouts repository.CheckoutRepository
	orders    repository.OrderRepository
	products  repository.ProductRepository
	users     repository.UserRepository

	resolver   *PriceResolver
	dispatcher *ShipmentDispatcher
	invoices   *InvoiceService

	codVerifier    PaymentVerifier
	onlineVerifier PaymentVerifier

	log *zap.Logger
}

func NewCheckoutService(
	checkouts repository.CheckoutRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	resolver *PriceResolver,
	dispatcher *ShipmentDispatcher,
	invoices *InvoiceService,
	onlineVerifier PaymentVerifier,
	log *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		checkouts:      checkouts,
		orders:         orders,
		products:       products,
		users:          users,
		resolver:       resolver,
		dispatcher:     dispatcher,
		invoices:       invoices,
		codVerifier:    NewCODVerifier(),
		onlineVerifier: onlineVerifier,
		log:            log,
	}
}

func (s *checkoutServiceImpl) FinalizeCOD(ctx context.Context, checkoutID string) (*dto.FinalizeResponse, error) {
	_, err := s.finalize(ctx, checkoutID, &dto.PaymentCallback{})
	if err != nil {
		return nil, err
	}

	return &dto.FinalizeResponse{Success: true}, nil
}

func (s *checkoutServiceImpl) FinalizeOnline(ctx context.Context, callback *dto.PaymentCallback) (*dto.FinalizeResponse, error) {
	session, err := s.finalize(ctx, callback.CheckoutID, callback)
	if err != nil {
		return nil, err
	}

	return &dto.FinalizeResponse{
		Success:      true,
		CheckoutData: session,
	}, nil
}

func (s *checkoutServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// finalize is the single sequential pipeline. Everything up to and
// including the inventory/cart sync is fatal on failure; the carrier push
// and invoice/mail steps are best-effort and report through fields on the
// order instead.
func (s *checkoutServiceImpl) finalize(ctx context.Context, checkoutID string, callback *dto.PaymentCallback) (*model.CheckoutSession, error) {
	session, err := s.checkouts.FindByID(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvalidCheckout
		}
		return nil, fmt.Errorf("load checkout %s: %w", checkoutID, err)
	}

	if err := s.verifierFor(session.PaymentMode).Verify(session, callback); err != nil {
		return nil, err
	}

	// Idempotency guard: a finalized checkout is a successful no-op. The
	// read is not atomic with the write below; the conditional create is
	// what actually closes the duplicate window.
	if _, err := s.orders.FindByID(ctx, checkoutID); err == nil {
		s.log.Info("checkout already finalized, skipping",
			zap.String("checkout_id", checkoutID))
		return session, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("idempotency lookup for %s: %w", checkoutID, err)
	}

	lines, err := s.resolver.Resolve(ctx, session.Items)
	if err != nil {
		return nil, fmt.Errorf("resolve prices for %s: %w", checkoutID, err)
	}

	order := &model.Order{
		ID:            session.ID,
		UserID:        session.UserID,
		Checkout:      *session,
		Products:      lines,
		PaymentAmount: session.Total,
		PaymentMode:   session.PaymentMode,
		PaymentID:     callback.PaymentID,
	}

	created, err := s.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrOrderCreate, checkoutID, err)
	}
	if !created {
		// A concurrent finalization won the race; the store rejected our
		// write, so no duplicate side effects are run.
		s.log.Info("order already created concurrently, skipping",
			zap.String("checkout_id", checkoutID))
		return session, nil
	}

	if err := s.syncInventoryAndCart(ctx, order); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, order)
	s.invoices.Process(ctx, order)

	s.log.Info("checkout finalized",
		zap.String("order_id", order.ID),
		zap.String("payment_mode", string(order.PaymentMode)),
		zap.Int("lines", len(order.Products)))

	return session, nil
}

func (s *checkoutServiceImpl) verifierFor(mode model.PaymentMode) PaymentVerifier {
	if mode == model.PaymentModeOnline {
		return s.onlineVerifier
	}
	return s.codVerifier
}

// syncInventoryAndCart bumps the per-product order counters in one batch
// and removes the ordered products from the buyer's cart. Both run after
// the commit point, so a failure here leaves the order persisted without
// its side effects; the error still fails the invocation so the gap is
// visible to the caller.
func (s *checkoutServiceImpl) syncInventoryAndCart(ctx context.Context, order *model.Order) error {
	quantities := make(map[string]int, len(order.Products))
	productIDs := make([]string, 0, len(order.Products))
	for _, line := range order.Products {
		quantities[line.ProductID] += line.Quantity
		productIDs = append(productIDs, line.ProductID)
	}

	if err := s.products.IncrementOrderCounts(ctx, quantities); err != nil {
		return fmt.Errorf("increment order counters for %s: %w", order.ID, err)
	}

	if err := s.users.RemoveCartItems(ctx, order.UserID, productIDs); err != nil {
		return fmt.Errorf("prune cart for %s: %w", order.UserID, err)
	}

	return nil
}
