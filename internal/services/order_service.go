package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/normalize"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/tracking"
	"github.com/rahu12-tech/pixelbazarfrontend/pkg/rabbitmq"
)

// OrderService reads and mutates persisted orders: history listing,
// cancellation, tracking status ingestion and legacy record import.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mediaBase string
	mqClient  EventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. mediaBase is the URL
// prefix bare image paths resolve against during import.
func NewOrderService(orderRepo repositories.OrderRepository, mediaBase string, mqClient EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mediaBase: mediaBase,
		mqClient:  mqClient,
		now:       time.Now,
	}
}

// ListByUser returns the user's order history, newest first.
func (s *OrderService) ListByUser(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// GetByID returns one order, scoped to its owner.
func (s *OrderService) GetByID(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return order, nil
}

// TrackingView is the fulfillment progress of an order as shown on the
// tracking page.
type TrackingView struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Progress  float64   `json:"progress"`
	Delivered bool      `json:"delivered"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Track derives the tracking view for an order. An unknown stored
// status renders as the initial stage rather than an error.
func (s *OrderService) Track(userID, orderID string) (*TrackingView, error) {
	order, err := s.GetByID(userID, orderID)
	if err != nil {
		return nil, err
	}
	stage, _ := tracking.ParseOrderStage(order.Tracking.Status)
	return &TrackingView{
		OrderID:   order.ID,
		Status:    stage.String(),
		Progress:  stage.Progress(),
		Delivered: stage.IsTerminal(),
		UpdatedAt: order.Tracking.UpdatedAt,
	}, nil
}

// Cancel marks an order cancelled. Delivered and already-cancelled
// orders are rejected; cancellation never rewinds tracking.
func (s *OrderService) Cancel(userID, orderID string) (*models.Order, error) {
	order, err := s.GetByID(userID, orderID)
	if err != nil {
		return nil, err
	}
	if !tracking.CanCancel(order) {
		return nil, fmt.Errorf("order %s can no longer be cancelled", orderID)
	}
	if err := s.orderRepo.UpdateStatus(orderID, models.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}
	order.Status = models.OrderStatusCancelled

	s.publishOrderEvent(rabbitmq.EventOrderCancelled, order)
	return order, nil
}

// ApplyTrackingUpdate ingests a fulfillment status for an order. Only
// same-stage and single-step-forward moves are accepted; anything else
// is rejected and the stored status keeps its value. Cancelled orders
// take no fulfillment progress at all.
func (s *OrderService) ApplyTrackingUpdate(orderID, status string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("illegal tracking update: order %s is cancelled", orderID)
	}

	to, ok := tracking.ParseOrderStage(status)
	if !ok {
		return nil, fmt.Errorf("unknown tracking status %q", status)
	}
	from, _ := tracking.ParseOrderStage(order.Tracking.Status)
	if !tracking.CanTransition(from, to) {
		return nil, fmt.Errorf("illegal tracking transition %s -> %s for order %s", from, to, orderID)
	}

	at := s.now()
	if err := s.orderRepo.UpdateTracking(orderID, to.String(), at); err != nil {
		return nil, fmt.Errorf("failed to update tracking for order %s: %w", orderID, err)
	}
	order.Tracking.Status = to.String()
	order.Tracking.UpdatedAt = at
	return order, nil
}

// ImportLegacy normalizes raw order records from an older backend
// export and persists the survivors. Records with no recognizable id
// are dropped; the count of imported orders is returned.
func (s *OrderService) ImportLegacy(userID string, raws []map[string]interface{}) (int, error) {
	orders := normalize.Orders(s.mediaBase, raws)
	imported := 0
	for i := range orders {
		orders[i].UserID = userID
		if err := s.orderRepo.Create(&orders[i]); err != nil {
			log.Printf("Skipping legacy order %s: %v", orders[i].ID, err)
			continue
		}
		imported++
	}
	return imported, nil
}

func (s *OrderService) publishOrderEvent(routingKey string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.Exchange, routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s for order %s: %v", routingKey, order.ID, err)
	}
}
