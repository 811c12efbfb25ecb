package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Order snapshots the shipping address at creation time so later address
// edits never alter historical orders. Items are immutable after creation;
// only status/tracking fields change.
type Order struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	OrderNumber     string  `gorm:"uniqueIndex;size:40" json:"order_number"`
	UserID          uint    `gorm:"index;not null" json:"user_id"`
	TotalAmount     float64 `gorm:"not null" json:"total_amount"`
	Subtotal        float64 `json:"subtotal"`
	PaymentIntentID string  `gorm:"uniqueIndex;size:255" json:"payment_intent_id"`
	// Raw JSON copy of the address row used at checkout.
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`
	Status          string `gorm:"size:20;default:'pending'" json:"status"`

	ShippingFirstName    string `gorm:"size:100" json:"shipping_first_name"`
	ShippingLastName     string `gorm:"size:100" json:"shipping_last_name"`
	ShippingPhone        string `gorm:"size:30" json:"shipping_phone"`
	ShippingAddressLine1 string `gorm:"size:512" json:"shipping_address_line_1"`
	ShippingCity         string `gorm:"size:100" json:"shipping_city"`
	ShippingState        string `gorm:"size:100" json:"shipping_state"`
	ShippingPostalCode   string `gorm:"size:20" json:"shipping_postal_code"`
	ShippingCountry      string `gorm:"size:100" json:"shipping_country"`

	BillingFirstName    string `gorm:"size:100" json:"billing_first_name"`
	BillingLastName     string `gorm:"size:100" json:"billing_last_name"`
	BillingPhone        string `gorm:"size:30" json:"billing_phone"`
	BillingAddressLine1 string `gorm:"size:512" json:"billing_address_line_1"`
	BillingCity         string `gorm:"size:100" json:"billing_city"`
	BillingState        string `gorm:"size:100" json:"billing_state"`
	BillingPostalCode   string `gorm:"size:20" json:"billing_postal_code"`
	BillingCountry      string `gorm:"size:100" json:"billing_country"`

	TrackingNumber *string    `gorm:"size:100" json:"tracking_number"`
	AdminNotes     *string    `json:"admin_notes"`
	ShippedAt      *time.Time `json:"shipped_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem keeps a product name/image snapshot so it survives later product
// edits or deletion.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index;not null" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	TotalPrice   float64 `gorm:"not null" json:"total_price"`
	ProductName  string  `gorm:"size:255" json:"product_name"`
	ProductImage string  `gorm:"size:512" json:"product_image"`
}
