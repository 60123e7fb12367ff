package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSession(t *testing.T) {
	gw := NewHMACGateway("key_test", "secret_test")

	session, err := gw.CreateSession(context.Background(), 499.50, "INR")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.SessionID, "order_"))
	assert.Equal(t, "key_test", session.KeyID)
	assert.Equal(t, int64(49950), session.Amount, "amount must be converted to paise")
	assert.Equal(t, "INR", session.Currency)

	// Currency defaults
	session, err = gw.CreateSession(context.Background(), 100, "")
	assert.NoError(t, err)
	assert.Equal(t, "INR", session.Currency)

	// Session IDs are unique per call
	other, _ := gw.CreateSession(context.Background(), 100, "INR")
	assert.NotEqual(t, session.SessionID, other.SessionID)
}

func TestCreateSessionRejectsBadInput(t *testing.T) {
	gw := NewHMACGateway("key_test", "secret_test")

	_, err := gw.CreateSession(context.Background(), 0, "INR")
	assert.Error(t, err)

	_, err = gw.CreateSession(context.Background(), -5, "INR")
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gw.CreateSession(cancelled, 100, "INR")
	assert.Error(t, err)
}

func TestVerifyCallback(t *testing.T) {
	gw := NewHMACGateway("key_test", "secret_test")

	cb := Callback{
		SessionID: "order_abc123",
		PaymentID: "pay_xyz789",
	}
	cb.Signature = gw.Sign(cb.SessionID, cb.PaymentID)
	assert.NoError(t, gw.VerifyCallback(cb))

	// Tampered payment id fails
	tampered := cb
	tampered.PaymentID = "pay_other"
	assert.Error(t, gw.VerifyCallback(tampered))

	// Forged signature fails
	forged := cb
	forged.Signature = "deadbeef"
	assert.Error(t, gw.VerifyCallback(forged))

	// A different secret produces a different signature
	otherGw := NewHMACGateway("key_test", "other_secret")
	assert.Error(t, otherGw.VerifyCallback(cb))
}

func TestVerifyCallbackRequiresAllFields(t *testing.T) {
	gw := NewHMACGateway("key_test", "secret_test")

	assert.Error(t, gw.VerifyCallback(Callback{}))
	assert.Error(t, gw.VerifyCallback(Callback{SessionID: "order_1", PaymentID: "pay_1"}))
	assert.Error(t, gw.VerifyCallback(Callback{SessionID: "order_1", Signature: "sig"}))
}
