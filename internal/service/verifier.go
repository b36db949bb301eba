package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sparemart/internal/dto"
	"sparemart/internal/model"
)

// PaymentVerifier checks the authenticity of a payment before an order is
// written. Finalization picks the strategy from the session's payment mode.
type PaymentVerifier interface {
	Verify(session *model.CheckoutSession, callback *dto.PaymentCallback) error
}

// codVerifier accepts unconditionally; cash on delivery has no gateway
// callback to check.
type codVerifier struct{}

func NewCODVerifier() PaymentVerifier {
	return codVerifier{}
}

func (codVerifier) Verify(*model.CheckoutSession, *dto.PaymentCallback) error {
	return nil
}

// signatureVerifier checks the gateway's HMAC-SHA256 callback signature
// over "<gatewayOrderID>|<paymentID>".
type signatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(secret string) PaymentVerifier {
	return &signatureVerifier{secret: []byte(secret)}
}

func (v *signatureVerifier) Verify(session *model.CheckoutSession, callback *dto.PaymentCallback) error {
	if session.GatewayOrderID != callback.GatewayOrderID {
		return model.ErrOrderMismatch
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(callback.GatewayOrderID + "|" + callback.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(callback.Signature)) {
		return model.ErrInvalidSignature
	}

	return nil
}
