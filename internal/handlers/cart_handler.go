package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/services"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/session"
)

// CartHandler handles HTTP requests for the cart and coupon surface.
type CartHandler struct {
	cartService   *services.CartService
	couponService *services.CouponService
	sessions      *session.Store
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, couponService *services.CouponService, sessions *session.Store) *CartHandler {
	return &CartHandler{
		cartService:   cartService,
		couponService: couponService,
		sessions:      sessions,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Patch("/:id/quantity", h.HandleAdjustQuantity)
	cartRoutes.Delete("/clear", h.HandleClearCart)
	cartRoutes.Delete("/:id/remove", h.HandleRemoveItem)

	couponRoutes := router.Group("/coupons")
	couponRoutes.Post("/apply", h.HandleApplyCoupon)
	couponRoutes.Delete("/remove", h.HandleRemoveCoupon)
}

// currentUserID reads the authenticated user id stored by the JWT
// middleware.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// HandleGetCart returns the user's cart view with computed totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := currentUserID(c)
	items, err := h.cartService.Get(userID)
	if err != nil {
		log.Printf("Error fetching cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}

	coupon, discount := h.sessions.Get(userID).Coupon()
	totals := h.cartService.ComputeTotals(items, discount)
	return c.JSON(fiber.Map{
		"items":  items,
		"totals": totals,
		"coupon": coupon,
	})
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	item, err := h.cartService.Add(currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
		"item":    item,
	})
}

// QuantityRequest represents the request body for a quantity change.
type QuantityRequest struct {
	Direction string `json:"direction"`
}

// HandleAdjustQuantity increments or decrements one cart line.
func (h *CartHandler) HandleAdjustQuantity(c *fiber.Ctx) error {
	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.cartService.AdjustQuantity(currentUserID(c), c.Params("id"), req.Direction)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not change quantity",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Quantity updated",
		"item":    item,
	})
}

// HandleRemoveItem removes one cart line. Removing an id that is no
// longer in the cart still succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.cartService.Remove(currentUserID(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}

// HandleClearCart wipes the whole cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.cartService.Clear(currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}

// ApplyCouponRequest represents the request body for applying a coupon.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// HandleApplyCoupon applies a coupon code to the user's cart total.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := currentUserID(c)
	items, err := h.cartService.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	totals := h.cartService.ComputeTotals(items, 0)

	sess := h.sessions.Get(userID)
	applied, err := h.couponService.Apply(sess, req.Code, totals.GrandTotal)
	if err != nil {
		var couponErr *services.CouponError
		if errors.As(err, &couponErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": couponErr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to apply coupon",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"discountAmount": applied.DiscountAmount,
		"coupon":         applied,
		"totals":         h.cartService.ComputeTotals(items, applied.DiscountAmount),
	})
}

// HandleRemoveCoupon removes any applied coupon. Safe when none is
// applied.
func (h *CartHandler) HandleRemoveCoupon(c *fiber.Ctx) error {
	h.couponService.Remove(h.sessions.Get(currentUserID(c)))
	return c.JSON(fiber.Map{
		"message": "Coupon removed",
	})
}
