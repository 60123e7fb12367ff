package repositories

import (
	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// CouponRepository defines the interface for coupon lookups. Codes are
// matched case-sensitively as stored.
type CouponRepository interface {
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
}
