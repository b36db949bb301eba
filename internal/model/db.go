package model

import "time"

// PaymentMode selects the verification strategy during finalization.
type PaymentMode string

const (
	PaymentModeCOD    PaymentMode = "cod"
	PaymentModeOnline PaymentMode = "online"
)

// Shipping status values written by the shipment dispatcher. These live in
// a separate channel from the order lifecycle status and must not be
// conflated with it.
const (
	ShippingPushed = "pushed"
	ShippingFailed = "failed"
	ShippingError  = "error"
)

// CheckoutSession is the ephemeral pre-payment snapshot created by the
// checkout flow. It is immutable once created; finalization only reads it.
type CheckoutSession struct {
	ID     string `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"userId"`

	Items []CheckoutItem `gorm:"serializer:json" json:"items"`

	// Address is the shipping address serialized by the client at checkout
	// time; the shipment dispatcher parses it into a ShippingAddress.
	Address string `gorm:"type:text" json:"address"`

	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Fees      float64 `json:"fees"`
	Advance   float64 `json:"advance"`
	CODAmount float64 `json:"codAmount"` // amount still due on delivery
	Total     float64 `json:"total"`

	PaymentMode PaymentMode `gorm:"size:16;not null" json:"paymentMode"`
	// GatewayOrderID is set only for online payments.
	GatewayOrderID string `gorm:"size:64" json:"gatewayOrderId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// CheckoutItem is one line of a checkout session. Attributes carries the
// variation selection (Color, Quality, Brand, ...) chosen by the buyer.
type CheckoutItem struct {
	ProductID  string            `json:"productId"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Order is the durable record of a finalized purchase, keyed by the
// checkout id. The embedded session copy is kept verbatim for audit; the
// resolved lines are the authoritative pricing.
type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"userId"`

	Checkout CheckoutSession       `gorm:"serializer:json" json:"checkout"`
	Products []ResolvedProductLine `gorm:"serializer:json" json:"products"`

	PaymentAmount float64     `json:"paymentAmount"`
	PaymentMode   PaymentMode `gorm:"size:16;not null" json:"paymentMode"`
	PaymentID     string      `gorm:"size:64" json:"paymentId,omitempty"`

	// Status is the order lifecycle (cancel/ship/deliver flows own it).
	// Finalization leaves it empty; empty means pending.
	Status string `gorm:"size:32;index" json:"status,omitempty"`

	// Carrier fields, written only by the shipment dispatcher.
	ShippingStatus    string `gorm:"size:16" json:"shippingStatus,omitempty"`
	CarrierOrderID    string `gorm:"size:64" json:"carrierOrderId,omitempty"`
	CarrierShipmentID string `gorm:"size:64" json:"carrierShipmentId,omitempty"`
	CarrierResponse   string `gorm:"type:text" json:"carrierResponse,omitempty"`
	CarrierError      string `gorm:"type:text" json:"carrierError,omitempty"`

	// Invoice fields, written only by the invoice service.
	InvoiceURL         string     `gorm:"type:text" json:"invoiceUrl,omitempty"`
	InvoiceGeneratedAt *time.Time `json:"invoiceGeneratedAt,omitempty"`

	// PostProcessError records a swallowed downstream failure for
	// operational follow-up; the buyer is never shown it.
	PostProcessError string `gorm:"type:text" json:"postProcessError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResolvedProductLine is a checkout line whose price has been recomputed
// from the live catalog at fulfillment time. Immutable after creation.
type ResolvedProductLine struct {
	ProductID  string            `json:"productId"`
	Quantity   int               `json:"quantity"`
	Price      float64           `json:"price"`
	Total      float64           `json:"total"`
	Title      string            `json:"title"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Product is the catalog entry. Prices arrive from the catalog import as
// strings and are parsed (clamped to 0 on failure) at resolution time.
type Product struct {
	ID         string      `gorm:"primaryKey;size:64;not null" json:"id"`
	Title      string      `gorm:"size:255" json:"title"`
	Price      string      `gorm:"size:32" json:"price"`
	SalePrice  string      `gorm:"size:32" json:"salePrice,omitempty"`
	IsVariable bool        `json:"isVariable"`
	Variations []Variation `gorm:"serializer:json" json:"variations,omitempty"`

	// OrderCount is the cumulative ordered-quantity counter, bumped with
	// commutative increments at finalization.
	OrderCount int64 `gorm:"not null;default:0" json:"orderCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Variation is one priced attribute-combination SKU of a variable product.
type Variation struct {
	Attributes map[string]string `json:"attributes"`
	Price      string            `json:"price"`
	SalePrice  string            `json:"salePrice,omitempty"`
}

// User is the buyer aggregate; only the fields finalization needs.
type User struct {
	ID        string `gorm:"primaryKey;size:64;not null" json:"id"`
	Name      string `gorm:"size:128" json:"name"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:32" json:"phone"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one entry of a buyer's cart, keyed by the full variation
// selection so individual entries can be removed atomically.
type CartItem struct {
	UserID    string `gorm:"primaryKey;size:64;not null" json:"userId"`
	ProductID string `gorm:"primaryKey;size:64;not null" json:"productId"`
	Color     string `gorm:"primaryKey;size:64;not null;default:''" json:"color,omitempty"`
	Quality   string `gorm:"primaryKey;size:64;not null;default:''" json:"quality,omitempty"`
	Brand     string `gorm:"primaryKey;size:64;not null;default:''" json:"brand,omitempty"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	CreatedAt time.Time
}

// ShippingAddress is the parse target of CheckoutSession.Address.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}
