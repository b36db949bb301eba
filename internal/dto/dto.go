package dto

import "sparemart/internal/model"

// PaymentCallback is the gateway's payment-success callback for an online
// checkout.
type PaymentCallback struct {
	CheckoutID     string `json:"checkoutId"`
	PaymentID      string `json:"paymentId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Signature      string `json:"signature"`
}

// FinalizeResponse is returned for both finalize paths. CheckoutData is
// populated on the online path only.
type FinalizeResponse struct {
	Success      bool                   `json:"success"`
	CheckoutData *model.CheckoutSession `json:"checkoutData,omitempty"`
}
