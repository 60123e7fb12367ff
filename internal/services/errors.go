package services

import "fmt"

// ValidationError carries field-scoped messages from local form checks.
// It never involves the network and is always recoverable by user
// correction.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// DeliverabilityError means the backend rejected the postal code. It
// blocks submission regardless of form validity.
type DeliverabilityError struct {
	Pincode string
	Message string
}

func (e *DeliverabilityError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("delivery is not available for pincode %s", e.Pincode)
}

// CouponError means a coupon could not be applied: invalid, ineligible,
// expired, or the lookup failed. All cases read the same to the
// shopper and never touch cart contents.
type CouponError struct {
	Message string
}

func (e *CouponError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Failed to apply coupon"
}

// OrderSubmissionError means order creation was rejected or
// unreachable. The checkout attempt aborts and the cart is untouched.
type OrderSubmissionError struct {
	Err error
}

func (e *OrderSubmissionError) Error() string {
	return fmt.Sprintf("failed to place order: %v", e.Err)
}

func (e *OrderSubmissionError) Unwrap() error { return e.Err }

// PaymentVerificationError is surfaced distinctly from submission
// errors: the order may already exist server-side with its payment
// unconfirmed. Reconciliation of that divergence is owned by the
// backend; the core neither retries nor cancels.
type PaymentVerificationError struct {
	Err error
}

func (e *PaymentVerificationError) Error() string {
	return fmt.Sprintf("payment verification failed: %v", e.Err)
}

func (e *PaymentVerificationError) Unwrap() error { return e.Err }
