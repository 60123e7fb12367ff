package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/payment"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/services"
)

// CheckoutHandler handles HTTP requests for checkout: pincode checks,
// order submission and payment verification.
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/check-pincode", h.HandleCheckPincode)
	router.Post("/order", h.HandleSubmit)
	router.Post("/create-payment-session", h.HandleCreatePaymentSession)
	router.Post("/verify-payment", h.HandleVerifyPayment)
}

// PincodeRequest represents the request body for a deliverability check.
type PincodeRequest struct {
	Pincode string `json:"pincode"`
}

// HandleCheckPincode reports whether a pincode is serviceable.
func (h *CheckoutHandler) HandleCheckPincode(c *fiber.Ctx) error {
	var req PincodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	zone, err := h.checkoutService.CheckDeliverability(req.Pincode)
	if err != nil {
		var delErr *services.DeliverabilityError
		if errors.As(err, &delErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"deliverable": false,
				"message":     delErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Pincode check failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"deliverable":     true,
		"msg":             zone.Message,
		"delivery_days":   zone.DeliveryDays,
		"delivery_charge": zone.DeliveryCharge,
	})
}

// HandleSubmit runs the checkout pipeline for the user's cart.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	confirmation, err := h.checkoutService.Submit(c.UserContext(), currentUserID(c), form)
	if err != nil {
		return h.submitError(c, err)
	}

	resp := fiber.Map{
		"message": "Order placed successfully",
		"order":   confirmation.Order,
	}
	if confirmation.PaymentSession != nil {
		resp["payment_session"] = confirmation.PaymentSession
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// submitError maps checkout failures onto status codes by error kind.
func (h *CheckoutHandler) submitError(c *fiber.Ctx, err error) error {
	var valErr *services.ValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  valErr.Fields,
		})
	}
	var delErr *services.DeliverabilityError
	if errors.As(err, &delErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": delErr.Error(),
			"pincode": delErr.Pincode,
		})
	}
	var subErr *services.OrderSubmissionError
	if errors.As(err, &subErr) {
		log.Printf("Order submission failed: %v", subErr)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   subErr.Error(),
		})
	}
	log.Printf("Unexpected checkout error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Checkout failed",
		"error":   err.Error(),
	})
}

// PaymentSessionRequest represents the request body for reopening a
// payment session.
type PaymentSessionRequest struct {
	OrderID string `json:"order_id"`
}

// HandleCreatePaymentSession opens a fresh gateway session for a
// pending online order, typically after the shopper abandoned or lost
// the one Submit handed out.
func (h *CheckoutHandler) HandleCreatePaymentSession(c *fiber.Ctx) error {
	var req PaymentSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	paySession, err := h.checkoutService.OpenPaymentSession(c.UserContext(), currentUserID(c), req.OrderID)
	if err != nil {
		var subErr *services.OrderSubmissionError
		if errors.As(err, &subErr) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Could not open payment session",
				"error":   subErr.Error(),
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not open payment session",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment_session": paySession,
	})
}

// HandleVerifyPayment settles an order from the gateway's payment
// callback.
func (h *CheckoutHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var cb payment.Callback
	if err := c.BodyParser(&cb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.checkoutService.ConfirmPayment(cb)
	if err != nil {
		log.Printf("Payment verification failed for session %s: %v", cb.SessionID, err)
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"message": "Payment verification failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Payment verified",
		"order":   order,
	})
}
