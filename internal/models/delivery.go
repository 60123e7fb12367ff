package models

import "gorm.io/gorm"

// DeliveryZone records whether a pincode is serviceable and with what
// terms. An unknown pincode is treated the same as a row with
// Deliverable=false: checkout is blocked.
type DeliveryZone struct {
	Pincode        string  `json:"pincode" gorm:"primaryKey;type:varchar(6)" validate:"required,len=6,numeric"`
	Deliverable    bool    `json:"deliverable"`
	Message        string  `json:"msg"`
	DeliveryDays   int     `json:"delivery_days"`
	DeliveryCharge float64 `json:"delivery_charge"`
	gorm.Model
}
