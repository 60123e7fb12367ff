// Package payment bridges checkout to the external payment gateway for
// the pay-now path. A session is opened before handing control to the
// gateway's widget; the callback it posts back is verified by signature
// before the payment is treated as settled.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Session is an open gateway checkout session. Amount is in the
// smallest currency unit, as the gateway expects.
type Session struct {
	SessionID string `json:"order_id"`
	KeyID     string `json:"key_id"`
	Amount    int64  `json:"order_amount"`
	Currency  string `json:"currency"`
}

// Callback carries the fields the gateway posts back after the shopper
// completes payment.
type Callback struct {
	SessionID string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Gateway opens payment sessions and verifies settlement callbacks.
type Gateway interface {
	CreateSession(ctx context.Context, amount float64, currency string) (*Session, error)
	VerifyCallback(cb Callback) error
}

// HMACGateway implements the gateway's order/signature scheme directly:
// sessions carry the publishable key id, and callbacks are signed with
// HMAC-SHA256(secret, sessionID + "|" + paymentID).
type HMACGateway struct {
	keyID  string
	secret []byte
}

// NewHMACGateway creates a gateway bridge for a key pair.
func NewHMACGateway(keyID, secret string) *HMACGateway {
	return &HMACGateway{
		keyID:  keyID,
		secret: []byte(secret),
	}
}

// CreateSession opens a new payment session for the given amount.
func (g *HMACGateway) CreateSession(ctx context.Context, amount float64, currency string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("payment session aborted: %w", err)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %.2f", amount)
	}
	if currency == "" {
		currency = "INR"
	}
	return &Session{
		SessionID: "order_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		KeyID:     g.keyID,
		Amount:    int64(amount * 100),
		Currency:  currency,
	}, nil
}

// VerifyCallback checks the callback signature. A mismatch means the
// callback did not come from the gateway and the payment must not be
// treated as settled.
func (g *HMACGateway) VerifyCallback(cb Callback) error {
	if cb.SessionID == "" || cb.PaymentID == "" || cb.Signature == "" {
		return fmt.Errorf("incomplete payment callback")
	}
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(cb.SessionID + "|" + cb.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(cb.Signature)) {
		return fmt.Errorf("payment signature mismatch for session %s", cb.SessionID)
	}
	return nil
}

// Sign computes the callback signature for a session/payment pair. The
// gateway does this on its side; exposed for tests and sandbox tooling.
func (g *HMACGateway) Sign(sessionID, paymentID string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(sessionID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
