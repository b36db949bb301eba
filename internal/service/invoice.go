package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sparemart/internal/client"
	"sparemart/internal/config"
	"sparemart/internal/model"
	"sparemart/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService renders the invoice PDF, stores its signed URL on the
// order and mails it to the buyer. Like the shipment dispatcher it never
// fails the pipeline: errors are logged and recorded on the order's
// post-processing-error field for operational follow-up.
type InvoiceService struct {
	renderer client.InvoiceRenderer
	mailer   client.Mailer
	orders   repository.OrderRepository
	users    repository.UserRepository
	company  *config.Company
	log      *zap.Logger
}

func NewInvoiceService(
	renderer client.InvoiceRenderer,
	mailer client.Mailer,
	orders repository.OrderRepository,
	users repository.UserRepository,
	company *config.Company,
	log *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		renderer: renderer,
		mailer:   mailer,
		orders:   orders,
		users:    users,
		company:  company,
		log:      log,
	}
}

func (s *InvoiceService) Process(ctx context.Context, order *model.Order) {
	if err := s.process(ctx, order); err != nil {
		s.log.Error("invoice post-processing failed",
			zap.String("order_id", order.ID), zap.Error(err))

		if setErr := s.orders.SetPostProcessError(ctx, order.ID, err.Error()); setErr != nil {
			s.log.Error("failed to record post-process error",
				zap.String("order_id", order.ID), zap.Error(setErr))
		}
	}
}

func (s *InvoiceService) process(ctx context.Context, order *model.Order) error {
	var address model.ShippingAddress
	if order.Checkout.Address != "" {
		if err := json.Unmarshal([]byte(order.Checkout.Address), &address); err != nil {
			return fmt.Errorf("parse shipping address: %w", err)
		}
	}

	result, err := s.renderer.Render(ctx, &client.RenderRequest{
		Order:   order,
		Address: &address,
		Company: s.company,
		Title:   "Tax Invoice",
	})
	if err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}

	generatedAt := time.Now()
	if err := s.orders.SetInvoice(ctx, order.ID, result.SignedURL, generatedAt); err != nil {
		return fmt.Errorf("store invoice url: %w", err)
	}

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("load buyer %s: %w", order.UserID, err)
	}

	attachmentName := fmt.Sprintf("invoice-%s.pdf", uuid.NewString())
	err = s.mailer.Send(&client.MailMessage{
		To:             user.Email,
		Subject:        fmt.Sprintf("Your %s order %s is confirmed", s.company.Name, order.ID),
		HTMLBody:       s.confirmationHTML(order, user),
		TextBody:       fmt.Sprintf("Your order %s has been placed. The invoice is attached.", order.ID),
		AttachmentName: attachmentName,
		Attachment:     result.PDF,
	})
	if err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}

	return nil
}

func (s *InvoiceService) confirmationHTML(order *model.Order, user *model.User) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your order <b>%s</b> of %d item(s), total %.2f. Your invoice is attached.</p><p>%s</p>",
		user.Name, order.ID, len(order.Products), order.PaymentAmount, s.company.Name,
	)
}
