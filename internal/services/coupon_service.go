package services

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/session"
)

// CouponService validates and applies coupon codes against a cart
// total. The applied state lives on the checkout session; at most one
// coupon is applied at a time and a second successful apply replaces
// the first.
type CouponService struct {
	couponRepo repositories.CouponRepository
	now        func() time.Time
}

// NewCouponService creates a new CouponService.
func NewCouponService(couponRepo repositories.CouponRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

// Apply validates a code against the cart total and records it on the
// session. Blank codes are rejected before any lookup. Every failure
// comes back as a *CouponError carrying the eligibility message when
// one exists and a generic fallback otherwise.
func (s *CouponService) Apply(sess *session.Session, code string, cartTotal float64) (*models.AppliedCoupon, error) {
	if strings.TrimSpace(code) == "" {
		return nil, &CouponError{Message: "Please enter a coupon code"}
	}

	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		log.Printf("Coupon lookup failed for code %q: %v", code, err)
		return nil, &CouponError{Message: "Invalid coupon code"}
	}

	if !coupon.IsActive {
		return nil, &CouponError{Message: "Invalid coupon code"}
	}
	now := s.now()
	if (!coupon.ValidFrom.IsZero() && now.Before(coupon.ValidFrom)) ||
		(!coupon.ValidUntil.IsZero() && now.After(coupon.ValidUntil)) {
		return nil, &CouponError{Message: "Coupon has expired"}
	}
	if cartTotal < coupon.MinAmount {
		return nil, &CouponError{Message: fmt.Sprintf("Minimum order amount should be ₹%.0f", coupon.MinAmount)}
	}

	discount := s.discountFor(coupon, cartTotal)
	applied := &models.AppliedCoupon{
		Code:           coupon.Code,
		Title:          coupon.Title,
		DiscountAmount: discount,
	}
	sess.ApplyCoupon(applied, discount)
	return applied, nil
}

// Remove resets the discount to zero and clears the applied-coupon
// reference. Safe to call when nothing is applied.
func (s *CouponService) Remove(sess *session.Session) {
	sess.RemoveCoupon()
}

// discountFor computes the rupee discount: a percentage capped at
// MaxDiscount, or the flat amount when no percentage is set. Never more
// than the cart total.
func (s *CouponService) discountFor(coupon *models.Coupon, cartTotal float64) float64 {
	var discount float64
	if coupon.DiscountPercent > 0 {
		discount = cartTotal * coupon.DiscountPercent / 100
		if coupon.MaxDiscount > 0 {
			discount = math.Min(discount, coupon.MaxDiscount)
		}
	} else {
		discount = coupon.DiscountAmount
	}
	return math.Min(discount, cartTotal)
}
