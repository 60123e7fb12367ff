package repositories

import (
	"fmt"
	"sync"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"github.com/google/uuid"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	coupons map[string]models.Coupon // keyed by code
	mu      sync.RWMutex
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[string]models.Coupon),
	}
}

// GetByCode returns a coupon by its exact code.
func (r *MockCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupon, ok := r.coupons[code]
	if !ok {
		return nil, fmt.Errorf("coupon with code %s not found", code)
	}
	return &coupon, nil
}

// Create stores a new coupon.
func (r *MockCouponRepository) Create(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	r.coupons[coupon.Code] = *coupon
	return nil
}
