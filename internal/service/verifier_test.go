package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sparemart/internal/dto"
	"sparemart/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "topsecret"

func sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestSignatureVerifier(t *testing.T) {
	verifier := NewSignatureVerifier(testSecret)
	session := &model.CheckoutSession{
		ID:             "CHK-1",
		PaymentMode:    model.PaymentModeOnline,
		GatewayOrderID: "GW-1",
	}

	valid := &dto.PaymentCallback{
		CheckoutID:     "CHK-1",
		PaymentID:      "PAY-1",
		GatewayOrderID: "GW-1",
		Signature:      sign(testSecret, "GW-1", "PAY-1"),
	}

	t.Run("valid signature verifies", func(t *testing.T) {
		require.NoError(t, verifier.Verify(session, valid))
	})

	t.Run("gateway order id mismatch", func(t *testing.T) {
		cb := *valid
		cb.GatewayOrderID = "GW-2"
		cb.Signature = sign(testSecret, "GW-2", "PAY-1")

		assert.ErrorIs(t, verifier.Verify(session, &cb), model.ErrOrderMismatch)
	})

	t.Run("mutated payment id rejected", func(t *testing.T) {
		cb := *valid
		cb.PaymentID = "PAY-2"

		assert.ErrorIs(t, verifier.Verify(session, &cb), model.ErrInvalidSignature)
	})

	t.Run("mutated signature rejected", func(t *testing.T) {
		cb := *valid
		sig := []byte(cb.Signature)
		if sig[0] == 'a' {
			sig[0] = 'b'
		} else {
			sig[0] = 'a'
		}
		cb.Signature = string(sig)

		assert.ErrorIs(t, verifier.Verify(session, &cb), model.ErrInvalidSignature)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		cb := *valid
		cb.Signature = sign("othersecret", "GW-1", "PAY-1")

		assert.ErrorIs(t, verifier.Verify(session, &cb), model.ErrInvalidSignature)
	})
}

func TestCODVerifierIsNoOp(t *testing.T) {
	session := &model.CheckoutSession{ID: "CHK-1", PaymentMode: model.PaymentModeCOD}

	assert.NoError(t, NewCODVerifier().Verify(session, &dto.PaymentCallback{}))
}
