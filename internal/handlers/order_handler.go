package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/services"
)

// OrderHandler handles HTTP requests for order history, tracking,
// cancellation, legacy import and returns.
type OrderHandler struct {
	orderService  *services.OrderService
	returnService *services.ReturnService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, returnService *services.ReturnService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		returnService: returnService,
	}
}

// RegisterRoutes registers the order and return routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Post("/import", h.HandleImportLegacy)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Get("/:id/track", h.HandleTrackOrder)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Patch("/:id/tracking", h.HandleTrackingUpdate)
	orderRoutes.Post("/:id/return", h.HandleCreateReturn)

	returnRoutes := router.Group("/returns")
	returnRoutes.Get("/", h.HandleListReturns)
	returnRoutes.Get("/:id/status", h.HandleReturnStatus)
	returnRoutes.Patch("/:id/status", h.HandleReturnStatusUpdate)
}

// HandleListOrders returns the user's order history, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListByUser(currentUserID(c))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

// HandleGetOrder returns one order owned by the user.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.orderService.GetByID(currentUserID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"order": order,
	})
}

// HandleTrackOrder returns the fulfillment progress of an order.
func (h *OrderHandler) HandleTrackOrder(c *fiber.Ctx) error {
	view, err := h.orderService.Track(currentUserID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleCancelOrder cancels an order that has not been delivered yet.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.orderService.Cancel(currentUserID(c), c.Params("id"))
	if err != nil {
		if strings.Contains(err.Error(), "no longer") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order can no longer be cancelled",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled",
		"order":   order,
	})
}

// TrackingUpdateRequest represents an ingested fulfillment status.
type TrackingUpdateRequest struct {
	Status string `json:"status"`
}

// HandleTrackingUpdate ingests a fulfillment status for an order.
func (h *OrderHandler) HandleTrackingUpdate(c *fiber.Ctx) error {
	var req TrackingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.orderService.ApplyTrackingUpdate(c.Params("id"), req.Status)
	if err != nil {
		if strings.Contains(err.Error(), "illegal") || strings.Contains(err.Error(), "unknown") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Rejected tracking update",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":  "Tracking updated",
		"tracking": order.Tracking,
	})
}

// ImportLegacyRequest represents a batch of raw order records from an
// older backend export.
type ImportLegacyRequest struct {
	Orders []map[string]interface{} `json:"orders"`
}

// HandleImportLegacy normalizes and persists legacy order records.
func (h *OrderHandler) HandleImportLegacy(c *fiber.Ctx) error {
	var req ImportLegacyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	imported, err := h.orderService.ImportLegacy(currentUserID(c), req.Orders)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Import failed",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Orders imported",
		"imported": imported,
		"received": len(req.Orders),
	})
}

// CreateReturnRequest represents the request body for opening a return.
type CreateReturnRequest struct {
	Reason    string `json:"reason"`
	OtherText string `json:"other_text"`
}

// HandleCreateReturn opens a return request for a delivered order.
func (h *OrderHandler) HandleCreateReturn(c *fiber.Ctx) error {
	var req CreateReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	request, err := h.returnService.Create(currentUserID(c), c.Params("id"), req.Reason, req.OtherText)
	if err != nil {
		var valErr *services.ValidationError
		if errors.As(err, &valErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  valErr.Fields,
			})
		}
		if strings.Contains(err.Error(), "not eligible") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order is not eligible for return",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not create return",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Return requested",
		"return":  request,
	})
}

// HandleListReturns returns the user's return requests.
func (h *OrderHandler) HandleListReturns(c *fiber.Ctx) error {
	requests, err := h.returnService.ListByUser(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load returns",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"returns": requests,
	})
}

// HandleReturnStatus returns the lifecycle progress of one return.
func (h *OrderHandler) HandleReturnStatus(c *fiber.Ctx) error {
	view, err := h.returnService.Status(currentUserID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Return not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleReturnStatusUpdate ingests a lifecycle status for a return.
func (h *OrderHandler) HandleReturnStatusUpdate(c *fiber.Ctx) error {
	var req TrackingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	request, err := h.returnService.ApplyStatusUpdate(c.Params("id"), req.Status)
	if err != nil {
		if strings.Contains(err.Error(), "illegal") || strings.Contains(err.Error(), "unknown") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Rejected return status update",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Return not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Return status updated",
		"return":  request,
	})
}
