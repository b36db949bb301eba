package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sparemart/internal/config"
	"time"
)

type CarrierClient interface {
	CreateShipment(ctx context.Context, req *CarrierShipmentRequest) (*CarrierShipmentResponse, error)
}

type carrierClientImpl struct {
	httpClient *http.Client
	baseURL    string
	clientKey  string
	secretKey  string
}

type CarrierItem struct {
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Units int     `json:"units"`
	Price float64 `json:"selling_price"`
}

type CarrierShipmentRequest struct {
	OrderID     string        `json:"order_id"`
	OrderDate   string        `json:"order_date"`
	PickupName  string        `json:"pickup_location"`
	Consignee   string        `json:"billing_customer_name"`
	Phone       string        `json:"billing_phone"`
	Address     string        `json:"billing_address"`
	Address2    string        `json:"billing_address_2,omitempty"`
	City        string        `json:"billing_city"`
	State       string        `json:"billing_state"`
	Pincode     string        `json:"billing_pincode"`
	Country     string        `json:"billing_country"`
	Items       []CarrierItem `json:"order_items"`
	PaymentType string        `json:"payment_method"` // COD | Prepaid
	CODAmount   float64       `json:"cod_amount"`
	SubTotal    float64       `json:"sub_total"`
	Weight      float64       `json:"weight"`
	Length      float64       `json:"length"`
	Breadth     float64       `json:"breadth"`
	Height      float64       `json:"height"`
}

// CarrierID tolerates carriers that return ids as numbers or strings.
type CarrierID string

func (id *CarrierID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = CarrierID(n.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*id = CarrierID(s)
	return nil
}

type CarrierShipmentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		OrderID    CarrierID `json:"order_id"`
		ShipmentID CarrierID `json:"shipment_id"`
	} `json:"data"`
	// Raw keeps the carrier's full body for the order's audit trail.
	Raw string `json:"-"`
}

func NewCarrierClient(carrierCfg *config.Carrier) CarrierClient {
	return &carrierClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   carrierCfg.BaseURL,
		clientKey: carrierCfg.ClientKey,
		secretKey: carrierCfg.SecretKey,
	}
}

// CreateShipment registers the order with the carrier. A transport-level
// failure or an unreadable body returns an error; any parseable carrier
// reply, accepted or rejected, comes back as a response with the Success
// flag set by the carrier.
func (c *carrierClientImpl) CreateShipment(ctx context.Context, shipReq *CarrierShipmentRequest) (*CarrierShipmentResponse, error) {
	body, err := json.Marshal(shipReq)
	if err != nil {
		return nil, fmt.Errorf("marshal carrier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/external/orders/create",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Key", c.clientKey)
	req.Header.Set("X-Secret-Key", c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read carrier response: %w", err)
	}

	var result CarrierShipmentResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("carrier error %d: %s", resp.StatusCode, string(raw))
	}
	result.Raw = string(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Success = false
		if result.Message == "" {
			result.Message = fmt.Sprintf("carrier returned status %d", resp.StatusCode)
		}
	}

	return &result, nil
}
