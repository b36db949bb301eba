package model

import "errors"

// Fatal finalization errors. Everything downstream of the order write is
// swallowed and recorded on the order instead of surfacing here.
var (
	ErrInvalidCheckout  = errors.New("Invalid Checkout ID")
	ErrOrderMismatch    = errors.New("Order ID mismatch")
	ErrInvalidSignature = errors.New("Invalid payment signature")
	ErrOrderCreate      = errors.New("failed to create order")
)
