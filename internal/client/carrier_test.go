package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sparemart/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *CarrierShipmentRequest {
	return &CarrierShipmentRequest{
		OrderID:     "CHK-1",
		OrderDate:   "2026-08-28",
		PickupName:  "warehouse",
		Consignee:   "Ravi Kumar",
		Phone:       "9876543210",
		Address:     "12 MG Road",
		City:        "Pune",
		State:       "MH",
		Pincode:     "411001",
		Country:     "India",
		Items:       []CarrierItem{{Name: "Clutch Plate", SKU: "P1", Units: 1, Price: 500}},
		PaymentType: "COD",
		CODAmount:   500,
		SubTotal:    500,
		Weight:      0.5,
		Length:      10,
		Breadth:     10,
		Height:      10,
	}
}

func TestCarrierClient_CreateShipment(t *testing.T) {
	t.Run("accepted shipment", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/external/orders/create", r.URL.Path)
			assert.Equal(t, "ck", r.Header.Get("X-Client-Key"))
			assert.Equal(t, "sk", r.Header.Get("X-Secret-Key"))

			var req CarrierShipmentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "CHK-1", req.OrderID)
			assert.Equal(t, "COD", req.PaymentType)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "order created",
				"data":    map[string]interface{}{"order_id": 1001, "shipment_id": "SHP-77"},
			})
		}))
		defer ts.Close()

		c := NewCarrierClient(&config.Carrier{BaseURL: ts.URL, ClientKey: "ck", SecretKey: "sk"})
		resp, err := c.CreateShipment(context.Background(), testRequest())
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.Equal(t, "1001", string(resp.Data.OrderID))
		assert.Equal(t, "SHP-77", string(resp.Data.ShipmentID))
		assert.NotEmpty(t, resp.Raw)
	})

	t.Run("rejected shipment keeps carrier message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "pincode not serviceable",
			})
		}))
		defer ts.Close()

		c := NewCarrierClient(&config.Carrier{BaseURL: ts.URL})
		resp, err := c.CreateShipment(context.Background(), testRequest())
		require.NoError(t, err)

		assert.False(t, resp.Success)
		assert.Equal(t, "pincode not serviceable", resp.Message)
	})

	t.Run("non-json failure is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer ts.Close()

		c := NewCarrierClient(&config.Carrier{BaseURL: ts.URL})
		_, err := c.CreateShipment(context.Background(), testRequest())
		assert.Error(t, err)
	})

	t.Run("unreachable carrier is an error", func(t *testing.T) {
		c := NewCarrierClient(&config.Carrier{BaseURL: "http://127.0.0.1:1"})
		_, err := c.CreateShipment(context.Background(), testRequest())
		assert.Error(t, err)
	})
}

func TestMailer_FailsFastWithoutConfig(t *testing.T) {
	m := NewMailer(&config.Mail{})
	err := m.Send(&MailMessage{To: "ravi@example.com", Subject: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail relay not configured")
}
