package models

import "time"

// Payment method and status values carried on an order.
const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cash on delivery"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Top-level order status values. Cancellation is only reachable before
// delivery; fulfillment progress lives in Tracking.
const (
	OrderStatusActive    = "active"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a product line frozen into an order at checkout time.
type OrderItem struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID    string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	ProductImg   string  `json:"product_img"`
	Quantity     int     `json:"quantity"`
	ReturnDays   string  `json:"product_return"` // per-item return window in days, "0" = non-returnable
}

// Payment is the payment descriptor of an order. SessionID links the
// order to an open payment-gateway session on the online path.
type Payment struct {
	Method    string `json:"method"`
	Status    string `json:"status"`
	SessionID string `json:"session_id,omitempty" gorm:"index"`
	PaymentID string `json:"payment_id,omitempty"`
}

// Address is the shipping address block captured from the billing form.
type Address struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Street    string `json:"address"`
	Town      string `json:"town"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// Tracking is the fulfillment descriptor of an order. Status is one of
// the stages of tracking.OrderStage; UpdatedAt is the time of the last
// stage change and doubles as the delivery timestamp once delivered.
type Tracking struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Order is a persisted record of a completed checkout. Fetched copies
// are snapshots; tracking moves only through explicit status ingestion.
type Order struct {
	ID             string      `json:"order_id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Products       []OrderItem `json:"products" gorm:"foreignKey:OrderID"`
	TotalAmount    float64     `json:"totalAmount"`
	CouponCode     string      `json:"coupon_code,omitempty"`
	CouponDiscount float64     `json:"coupon_discount"`
	FinalAmount    float64     `json:"finalAmount"`
	Payment        Payment     `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	Address        Address     `json:"shipping_address" gorm:"embedded"`
	Tracking       Tracking    `json:"tracking" gorm:"embedded;embeddedPrefix:tracking_"`
	Latitude       *float64    `json:"latitude,omitempty"`
	Longitude      *float64    `json:"longitude,omitempty"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
