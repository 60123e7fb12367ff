package models

import "gorm.io/gorm"

// CartItem represents a single product line in a user's cart.
// Quantity never drops below 1 through quantity adjustments; removal of a
// line is a separate explicit action.
type CartItem struct {
	ID             string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID         string  `json:"user_id" gorm:"index;type:varchar(36)"`
	ProductID      string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName    string  `json:"product_name" validate:"required"`
	ProductPrice   float64 `json:"product_price" validate:"gte=0"`
	ProductImg     string  `json:"product_img"`
	Quantity       int     `json:"quantity" validate:"gte=1"`
	DeliveryCharge float64 `json:"delivery_charge" validate:"gte=0"`
	ReturnDays     string  `json:"product_return"` // return window in days, "0" means non-returnable
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartTotals is the computed money view of a cart.
// Delivery charges are summed per line, matching the storefront's
// historical behaviour, and the grand total is not floored at zero here.
type CartTotals struct {
	Subtotal      float64 `json:"subtotal"`
	DeliveryTotal float64 `json:"delivery_total"`
	Discount      float64 `json:"discount"`
	GrandTotal    float64 `json:"grand_total"`
}
