package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

func TestSessionHydrateAndItems(t *testing.T) {
	s := &Session{UserID: "user-1"}
	assert.Empty(t, s.Items())

	items := []models.CartItem{{ID: "line-1", ProductName: "Mouse"}}
	s.Hydrate(items)

	got := s.Items()
	assert.Len(t, got, 1)

	// Items returns a copy; mutating it must not leak back
	got[0].ProductName = "changed"
	assert.Equal(t, "Mouse", s.Items()[0].ProductName)
}

func TestSessionCouponLifecycle(t *testing.T) {
	s := &Session{UserID: "user-1"}

	coupon, discount := s.Coupon()
	assert.Nil(t, coupon)
	assert.Equal(t, 0.0, discount)

	s.ApplyCoupon(&models.AppliedCoupon{Code: "SAVE20", DiscountAmount: 200}, 200)
	coupon, discount = s.Coupon()
	assert.Equal(t, "SAVE20", coupon.Code)
	assert.Equal(t, 200.0, discount)

	// A second apply replaces the first
	s.ApplyCoupon(&models.AppliedCoupon{Code: "FLAT50", DiscountAmount: 50}, 50)
	coupon, discount = s.Coupon()
	assert.Equal(t, "FLAT50", coupon.Code)
	assert.Equal(t, 50.0, discount)

	s.RemoveCoupon()
	coupon, discount = s.Coupon()
	assert.Nil(t, coupon)
	assert.Equal(t, 0.0, discount)
}

func TestSessionTeardown(t *testing.T) {
	s := &Session{UserID: "user-1"}
	s.Hydrate([]models.CartItem{{ID: "line-1"}})
	s.ApplyCoupon(&models.AppliedCoupon{Code: "SAVE20"}, 200)

	s.Teardown()
	assert.Empty(t, s.Items())
	coupon, discount := s.Coupon()
	assert.Nil(t, coupon)
	assert.Equal(t, 0.0, discount)
}

func TestStoreGetAndEnd(t *testing.T) {
	st := NewStore()

	s1 := st.Get("user-1")
	s2 := st.Get("user-1")
	assert.Same(t, s1, s2, "Get must hand back the same session per user")

	other := st.Get("user-2")
	assert.NotSame(t, s1, other)

	s1.Hydrate([]models.CartItem{{ID: "line-1"}})
	st.End("user-1")
	assert.Empty(t, s1.Items(), "End must tear the session down")

	fresh := st.Get("user-1")
	assert.NotSame(t, s1, fresh)

	// Ending an absent session is a no-op
	st.End("nobody")
}
