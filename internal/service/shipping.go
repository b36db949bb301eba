package service

import (
	"context"
	"encoding/json"
	"sparemart/internal/client"
	"sparemart/internal/model"
	"sparemart/internal/repository"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fixed packaging defaults sent to the carrier; real weights and box sizes
// are not tracked per product.
const (
	itemWeightKg = 0.5
	minBoxDimCm  = 10.0
)

// ShipmentDispatcher registers finalized orders with the carrier. It is
// strictly best-effort: every outcome, good or bad, becomes a merge-write
// of the order's carrier fields and nothing is ever raised to the caller.
type ShipmentDispatcher struct {
	carrier    client.CarrierClient
	orders     repository.OrderRepository
	pickupName string
	log        *zap.Logger
}

func NewShipmentDispatcher(carrier client.CarrierClient, orders repository.OrderRepository, pickupName string, log *zap.Logger) *ShipmentDispatcher {
	return &ShipmentDispatcher{
		carrier:    carrier,
		orders:     orders,
		pickupName: pickupName,
		log:        log,
	}
}

func (d *ShipmentDispatcher) Dispatch(ctx context.Context, order *model.Order) {
	if order.ID == "" || order.Checkout.Address == "" || len(order.Products) == 0 {
		d.log.Info("skipping shipment push, order incomplete",
			zap.String("order_id", order.ID))
		return
	}

	var address model.ShippingAddress
	if err := json.Unmarshal([]byte(order.Checkout.Address), &address); err != nil {
		d.recordShipping(ctx, order.ID, repository.ShippingUpdate{
			Status: model.ShippingError,
			Error:  "unparseable shipping address: " + err.Error(),
		})
		return
	}

	resp, err := d.carrier.CreateShipment(ctx, d.buildRequest(order, &address))
	if err != nil {
		d.log.Error("carrier push failed",
			zap.String("order_id", order.ID), zap.Error(err))
		d.recordShipping(ctx, order.ID, repository.ShippingUpdate{
			Status: model.ShippingError,
			Error:  err.Error(),
		})
		return
	}

	if !resp.Success {
		d.log.Warn("carrier rejected shipment",
			zap.String("order_id", order.ID), zap.String("message", resp.Message))
		d.recordShipping(ctx, order.ID, repository.ShippingUpdate{
			Status:      model.ShippingFailed,
			RawResponse: resp.Raw,
			Error:       resp.Message,
		})
		return
	}

	d.recordShipping(ctx, order.ID, repository.ShippingUpdate{
		Status:      model.ShippingPushed,
		OrderID:     string(resp.Data.OrderID),
		ShipmentID:  string(resp.Data.ShipmentID),
		RawResponse: resp.Raw,
	})
}

func (d *ShipmentDispatcher) buildRequest(order *model.Order, address *model.ShippingAddress) *client.CarrierShipmentRequest {
	items := make([]client.CarrierItem, len(order.Products))
	for i, line := range order.Products {
		items[i] = client.CarrierItem{
			Name:  line.Title,
			SKU:   line.ProductID,
			Units: line.Quantity,
			Price: line.Price,
		}
	}

	paymentType := "Prepaid"
	codAmount := 0.0
	if order.PaymentMode == model.PaymentModeCOD {
		paymentType = "COD"
		codAmount = order.Checkout.CODAmount
	}

	country := address.Country
	if country == "" {
		country = "India"
	}

	return &client.CarrierShipmentRequest{
		OrderID:     order.ID,
		OrderDate:   time.Now().Format("2006-01-02"),
		PickupName:  d.pickupName,
		Consignee:   address.Name,
		Phone:       normalizePhone(address.Phone),
		Address:     address.Line1,
		Address2:    address.Line2,
		City:        address.City,
		State:       address.State,
		Pincode:     address.Pincode,
		Country:     country,
		Items:       items,
		PaymentType: paymentType,
		CODAmount:   codAmount,
		SubTotal:    order.Checkout.Total,
		Weight:      itemWeightKg * float64(len(order.Products)),
		Length:      minBoxDimCm,
		Breadth:     minBoxDimCm,
		Height:      minBoxDimCm,
	}
}

// recordShipping merge-writes the carrier channel of the order. A failed
// status write is only logged; the order itself is already committed.
func (d *ShipmentDispatcher) recordShipping(ctx context.Context, orderID string, update repository.ShippingUpdate) {
	if err := d.orders.UpdateShipping(ctx, orderID, update); err != nil {
		d.log.Error("failed to record shipping status",
			zap.String("order_id", orderID),
			zap.String("status", update.Status),
			zap.Error(err))
	}
}

// normalizePhone reduces the number to its 10 significant digits, dropping
// punctuation and a leading country code.
func normalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	s := digits.String()
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}
