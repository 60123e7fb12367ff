package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/geo"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/payment"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/session"
	"github.com/rahu12-tech/pixelbazarfrontend/pkg/rabbitmq"
)

// CheckoutForm is the billing form submitted at checkout. Field names
// mirror the shipping address block stored on the order.
type CheckoutForm struct {
	FirstName     string `json:"fname" validate:"required"`
	LastName      string `json:"lname" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Mobile        string `json:"mobile" validate:"required,len=10,numeric"`
	Street        string `json:"address" validate:"required"`
	Town          string `json:"town" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Pincode       string `json:"pincode" validate:"required,len=6,numeric"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// Confirmation is the outcome of a successful Submit. PaymentSession is
// set only on the online path; the COD path never opens one.
type Confirmation struct {
	Order          *models.Order    `json:"order"`
	PaymentSession *payment.Session `json:"payment_session,omitempty"`
}

// CheckoutService drives order submission: form validation, pincode
// deliverability, order creation and the split between the
// cash-on-delivery and pay-now flows. The cart is cleared exactly once
// per confirmed success and never on any failure.
type CheckoutService struct {
	orderRepo  repositories.OrderRepository
	zoneRepo   repositories.DeliveryZoneRepository
	cartSvc    *CartService
	couponSvc  *CouponService
	sessions   *session.Store
	gateway    payment.Gateway
	geoSource  geo.Source
	geoTimeout time.Duration
	mqClient   EventPublisher
	validate   *validator.Validate
	now        func() time.Time
}

// NewCheckoutService creates a new CheckoutService. geoSource may be
// nil; orders are then submitted without coordinates.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	zoneRepo repositories.DeliveryZoneRepository,
	cartSvc *CartService,
	couponSvc *CouponService,
	sessions *session.Store,
	gateway payment.Gateway,
	geoSource geo.Source,
	geoTimeout time.Duration,
	mqClient EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:  orderRepo,
		zoneRepo:   zoneRepo,
		cartSvc:    cartSvc,
		couponSvc:  couponSvc,
		sessions:   sessions,
		gateway:    gateway,
		geoSource:  geoSource,
		geoTimeout: geoTimeout,
		mqClient:   mqClient,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// CheckDeliverability looks up whether a pincode is serviceable. An
// unknown pincode and a known-but-unserviceable one both come back as a
// *DeliverabilityError; the zone row is returned only when deliverable.
func (s *CheckoutService) CheckDeliverability(pincode string) (*models.DeliveryZone, error) {
	zone, err := s.zoneRepo.GetByPincode(pincode)
	if err != nil {
		return nil, &DeliverabilityError{Pincode: pincode}
	}
	if !zone.Deliverable {
		return nil, &DeliverabilityError{Pincode: pincode, Message: zone.Message}
	}
	return zone, nil
}

// Submit runs the full checkout pipeline for a user's cart. Validation
// and deliverability failures abort before any order exists. On the COD
// path the order is final immediately and the cart is cleared; on the
// online path the order is created with payment pending, a gateway
// session is opened and attached, and the cart survives until
// ConfirmPayment.
func (s *CheckoutService) Submit(ctx context.Context, userID string, form CheckoutForm) (*Confirmation, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	if _, err := s.CheckDeliverability(form.Pincode); err != nil {
		return nil, err
	}

	items, err := s.cartSvc.Get(userID)
	if err != nil {
		return nil, &OrderSubmissionError{Err: err}
	}
	if len(items) == 0 {
		return nil, &OrderSubmissionError{Err: fmt.Errorf("cart is empty")}
	}

	sess := s.sessions.Get(userID)
	coupon, discount := s.resolveCoupon(sess, items)
	totals := s.cartSvc.ComputeTotals(items, discount)
	final := math.Max(0, totals.GrandTotal)

	order := s.buildOrder(userID, form, items, coupon, totals, final)

	switch form.PaymentMethod {
	case models.PaymentMethodCOD:
		return s.submitCOD(order)
	case models.PaymentMethodOnline:
		return s.submitOnline(ctx, order, final)
	default:
		return nil, &ValidationError{Fields: map[string]string{
			"payment_method": "Please select a payment method",
		}}
	}
}

// resolveCoupon re-runs eligibility for the session's applied coupon
// against the cart actually being submitted. The cart may have shrunk
// or the coupon lapsed since it was applied; a coupon that no longer
// qualifies is dropped from the session so a stale discount never
// reaches the order row.
func (s *CheckoutService) resolveCoupon(sess *session.Session, items []models.CartItem) (*models.AppliedCoupon, float64) {
	applied, _ := sess.Coupon()
	if applied == nil {
		return nil, 0
	}
	base := s.cartSvc.ComputeTotals(items, 0)
	fresh, err := s.couponSvc.Apply(sess, applied.Code, base.GrandTotal)
	if err != nil {
		log.Printf("Dropping coupon %s at submission: %v", applied.Code, err)
		s.couponSvc.Remove(sess)
		return nil, 0
	}
	return fresh, fresh.DiscountAmount
}

// submitCOD finalizes a cash-on-delivery order. Acceptance by the store
// is the confirmed success, so the cart is cleared here.
func (s *CheckoutService) submitCOD(order *models.Order) (*Confirmation, error) {
	if err := s.orderRepo.Create(order); err != nil {
		return nil, &OrderSubmissionError{Err: err}
	}
	if err := s.cartSvc.Clear(order.UserID); err != nil {
		log.Printf("Order %s placed but cart clear failed: %v", order.ID, err)
	}
	s.publishEvent(rabbitmq.EventOrderCreated, order)
	return &Confirmation{Order: order}, nil
}

// submitOnline creates a pending order and opens a payment session for
// it. The cart is deliberately left intact: success is only confirmed
// by a verified payment callback.
func (s *CheckoutService) submitOnline(ctx context.Context, order *models.Order, amount float64) (*Confirmation, error) {
	if coords := geo.Locate(ctx, s.geoSource, s.geoTimeout); coords != nil {
		order.Latitude = &coords.Latitude
		order.Longitude = &coords.Longitude
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, &OrderSubmissionError{Err: err}
	}

	paySession, err := s.gateway.CreateSession(ctx, amount, "INR")
	if err != nil {
		return nil, &OrderSubmissionError{Err: fmt.Errorf("failed to open payment session: %w", err)}
	}
	if err := s.orderRepo.AttachPaymentSession(order.ID, paySession.SessionID); err != nil {
		return nil, &OrderSubmissionError{Err: err}
	}
	order.Payment.SessionID = paySession.SessionID

	s.publishEvent(rabbitmq.EventOrderCreated, order)
	return &Confirmation{Order: order, PaymentSession: paySession}, nil
}

// OpenPaymentSession opens a fresh gateway session for an existing
// pending online order, replacing whatever session was attached before.
// Settled, cancelled and cash-on-delivery orders are refused.
func (s *CheckoutService) OpenPaymentSession(ctx context.Context, userID, orderID string) (*payment.Session, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	if order.Payment.Method != models.PaymentMethodOnline {
		return nil, fmt.Errorf("order %s is not an online-payment order", orderID)
	}
	if order.Payment.Status == models.PaymentStatusCompleted {
		return nil, fmt.Errorf("order %s is already paid", orderID)
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("order %s is cancelled", orderID)
	}

	paySession, err := s.gateway.CreateSession(ctx, math.Max(0, order.FinalAmount), "INR")
	if err != nil {
		return nil, &OrderSubmissionError{Err: fmt.Errorf("failed to open payment session: %w", err)}
	}
	if err := s.orderRepo.AttachPaymentSession(order.ID, paySession.SessionID); err != nil {
		return nil, &OrderSubmissionError{Err: err}
	}
	return paySession, nil
}

// ConfirmPayment verifies a gateway callback and settles the matching
// order. Only after the signature checks out and the order is marked
// paid does the cart clear; any failure leaves the order pending and
// the cart untouched.
func (s *CheckoutService) ConfirmPayment(cb payment.Callback) (*models.Order, error) {
	if err := s.gateway.VerifyCallback(cb); err != nil {
		return nil, &PaymentVerificationError{Err: err}
	}

	order, err := s.orderRepo.GetByPaymentSession(cb.SessionID)
	if err != nil {
		return nil, &PaymentVerificationError{Err: fmt.Errorf("no order for payment session %s: %w", cb.SessionID, err)}
	}
	if order.Payment.Status == models.PaymentStatusCompleted {
		// Duplicate callback; the first one already settled the order.
		return order, nil
	}

	if err := s.orderRepo.UpdatePayment(order.ID, models.PaymentStatusCompleted, cb.PaymentID); err != nil {
		return nil, &PaymentVerificationError{Err: err}
	}
	order.Payment.Status = models.PaymentStatusCompleted
	order.Payment.PaymentID = cb.PaymentID

	if err := s.cartSvc.Clear(order.UserID); err != nil {
		log.Printf("Payment %s verified but cart clear failed: %v", cb.PaymentID, err)
	}
	s.publishEvent(rabbitmq.EventPaymentCompleted, order)
	return order, nil
}

// buildOrder freezes the cart lines and billing form into a new order
// row with tracking at its initial stage.
func (s *CheckoutService) buildOrder(userID string, form CheckoutForm, items []models.CartItem, coupon *models.AppliedCoupon, totals models.CartTotals, final float64) *models.Order {
	now := s.now()
	orderID := uuid.New().String()

	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      orderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			ProductImg:   item.ProductImg,
			Quantity:     item.Quantity,
			ReturnDays:   item.ReturnDays,
		})
	}

	order := &models.Order{
		ID:          orderID,
		UserID:      userID,
		Products:    lines,
		TotalAmount: totals.Subtotal + totals.DeliveryTotal,
		FinalAmount: final,
		Payment: models.Payment{
			Method: form.PaymentMethod,
			Status: models.PaymentStatusPending,
		},
		Address: models.Address{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Mobile:    form.Mobile,
			Street:    form.Street,
			Town:      form.Town,
			City:      form.City,
			State:     form.State,
			Pincode:   form.Pincode,
		},
		Tracking: models.Tracking{
			Status:    "Order Placed",
			UpdatedAt: now,
		},
		Status:    models.OrderStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
		order.CouponDiscount = coupon.DiscountAmount
	}
	return order
}

// validateForm runs the struct tags over the billing form and converts
// failures into a field-keyed message map.
func (s *CheckoutService) validateForm(form CheckoutForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[formFieldName(fe.Field())] = formFieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

// formFieldName maps struct field names to their form keys.
func formFieldName(field string) string {
	switch field {
	case "FirstName":
		return "fname"
	case "LastName":
		return "lname"
	case "Email":
		return "email"
	case "Mobile":
		return "mobile"
	case "Street":
		return "address"
	case "Town":
		return "town"
	case "City":
		return "city"
	case "State":
		return "state"
	case "Pincode":
		return "pincode"
	case "PaymentMethod":
		return "payment_method"
	default:
		return field
	}
}

func formFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "FirstName":
		return "First name is required"
	case "LastName":
		return "Last name is required"
	case "Email":
		if fe.Tag() == "email" {
			return "Invalid email address"
		}
		return "Email is required"
	case "Mobile":
		if fe.Tag() != "required" {
			return "Mobile number must be 10 digits"
		}
		return "Mobile number is required"
	case "Street":
		return "Address is required"
	case "Town":
		return "Town is required"
	case "City":
		return "City is required"
	case "State":
		return "State is required"
	case "Pincode":
		if fe.Tag() != "required" {
			return "Pincode must be 6 digits"
		}
		return "Pincode is required"
	case "PaymentMethod":
		return "Please select a payment method"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// publishEvent emits an order lifecycle event. Broker failures are
// logged only; the state change already happened.
func (s *CheckoutService) publishEvent(routingKey string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"amount":  order.FinalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.Exchange, routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s for order %s: %v", routingKey, order.ID, err)
	}
}
