package models

import "gorm.io/gorm"

// Product is the catalog row a cart line points at. Catalog browsing is
// served elsewhere; this record only carries what checkout and returns
// need: price, image, per-line delivery charge and the return policy.
type Product struct {
	ID             string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string  `json:"product_name" validate:"required,min=3,max=100"`
	Price          float64 `json:"product_price" validate:"required,gt=0"`
	Image          string  `json:"product_img"`
	DeliveryCharge float64 `json:"delivery_charge" validate:"gte=0"`
	ReturnDays     string  `json:"product_return"` // return window in days, "0" = non-returnable
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
