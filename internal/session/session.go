// Package session holds the per-user checkout context: the cached cart
// snapshot and the applied coupon. It is an explicit object handed to
// the cart and checkout services rather than ambient global state, with
// a hydrate/teardown lifecycle tied to login and logout.
package session

import (
	"sync"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// Session is one user's checkout context. A session has a single owner
// (one checkout flow at a time); the lock only covers the benign
// overlap with read-only cart refreshes.
type Session struct {
	UserID string

	mu       sync.RWMutex
	items    []models.CartItem
	coupon   *models.AppliedCoupon
	discount float64
}

// Hydrate replaces the cached cart snapshot, typically from persisted
// storage on login or after a server cart fetch.
func (s *Session) Hydrate(items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.CartItem(nil), items...)
}

// Items returns a copy of the cached cart snapshot.
func (s *Session) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem(nil), s.items...)
}

// ApplyCoupon records the applied coupon, replacing any previous one.
func (s *Session) ApplyCoupon(coupon *models.AppliedCoupon, discount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = coupon
	s.discount = discount
}

// RemoveCoupon clears the applied coupon. Always safe to call.
func (s *Session) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = nil
	s.discount = 0
}

// Coupon returns the applied coupon (nil when none) and its discount.
func (s *Session) Coupon() (*models.AppliedCoupon, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coupon, s.discount
}

// Teardown clears every field of the session, as on logout.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.coupon = nil
	s.discount = 0
}

// Store hands out sessions by user ID, creating them on first use and
// dropping them on End.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for a user, creating it if needed.
func (st *Store) Get(userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{UserID: userID}
		st.sessions[userID] = s
	}
	return s
}

// End tears down and forgets a user's session.
func (st *Store) End(userID string) {
	st.mu.Lock()
	s := st.sessions[userID]
	delete(st.sessions, userID)
	st.mu.Unlock()
	if s != nil {
		s.Teardown()
	}
}
