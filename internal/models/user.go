package models

import "gorm.io/gorm"

// User represents a shopper. Authentication itself is a boundary
// concern; the user row exists to own a session, a cart and orders.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Mobile     string `json:"mobile" gorm:"type:varchar(10)" validate:"omitempty,len=10,numeric"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
