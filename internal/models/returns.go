package models

import "time"

// Return reason codes. "other" requires free text, which replaces the
// code in the stored request.
const (
	ReturnReasonDamaged        = "damaged"
	ReturnReasonWrongItem      = "wrong_item"
	ReturnReasonNotAsDescribed = "not_as_described"
	ReturnReasonQualityIssue   = "quality_issue"
	ReturnReasonSizeIssue      = "size_issue"
	ReturnReasonOther          = "other"
)

// ReturnItem is a product line copied off the order when the return is
// requested, so the request keeps its own record of what is coming
// back.
type ReturnItem struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ReturnID     string  `json:"return_id" gorm:"index;type:varchar(36)"`
	ProductID    string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	ProductImg   string  `json:"product_img"`
	Quantity     int     `json:"quantity"`
}

// ReturnRequest is a post-delivery request to reverse an order. At most
// one non-rejected request may exist per order; a rejected request
// permits exactly one subsequent re-request. Products and RefundAmount
// are frozen at request time.
type ReturnRequest struct {
	ID           string       `json:"return_id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string       `json:"order_id" gorm:"index;type:varchar(36)"`
	UserID       string       `json:"user_id" gorm:"index;type:varchar(36)"`
	Reason       string       `json:"reason"`
	Products     []ReturnItem `json:"products" gorm:"foreignKey:ReturnID"`
	RefundAmount float64      `json:"refund_amount"`
	Status       string       `json:"status"` // one of tracking.ReturnStage
	PickupDate   *time.Time   `json:"pickup_date,omitempty"`
	RequestedAt  time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"last_updated"`
}
