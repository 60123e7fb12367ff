package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a backend-validated discount code. The code is matched
// case-sensitively as stored. A coupon discounts either a percentage of
// the order total (capped at MaxDiscount) or a flat amount when
// DiscountPercent is zero.
type Coupon struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code            string    `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required"`
	Title           string    `json:"title"`
	DiscountPercent float64   `json:"discount_percentage" validate:"gte=0,lte=100"`
	DiscountAmount  float64   `json:"discount_amount" validate:"gte=0"`
	MinAmount       float64   `json:"min_amount" validate:"gte=0"`
	MaxDiscount     float64   `json:"max_discount" validate:"gte=0"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	IsActive        bool      `json:"is_active"`
	gorm.Model
}

// AppliedCoupon is the nullable applied-coupon reference held by a
// checkout session. At most one coupon is applied at a time.
type AppliedCoupon struct {
	Code           string  `json:"code"`
	Title          string  `json:"title"`
	DiscountAmount float64 `json:"discount_amount"`
}
