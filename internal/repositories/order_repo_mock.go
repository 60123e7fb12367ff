package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAllByUser returns a user's orders, newest first.
func (r *MockOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return &order, nil
}

// GetByPaymentSession returns the order attached to a payment session.
func (r *MockOrderRepository) GetByPaymentSession(sessionID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.Payment.SessionID == sessionID {
			return &order, nil
		}
	}
	return nil, fmt.Errorf("no order for payment session %s", sessionID)
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Products {
		if order.Products[i].ID == "" {
			order.Products[i].ID = uuid.New().String()
		}
		order.Products[i].OrderID = order.ID
	}
	// Imported legacy records carry their own timestamps.
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the top-level status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// UpdateTracking stamps a new tracking stage onto an order.
func (r *MockOrderRepository) UpdateTracking(id string, status string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for tracking update", id)
	}
	order.Tracking.Status = status
	order.Tracking.UpdatedAt = at
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// AttachPaymentSession links an open gateway session to an order.
func (r *MockOrderRepository) AttachPaymentSession(id string, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for payment session", id)
	}
	order.Payment.SessionID = sessionID
	r.orders[id] = order
	return nil
}

// UpdatePayment updates the payment descriptor of an order.
func (r *MockOrderRepository) UpdatePayment(id string, status string, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for payment update", id)
	}
	order.Payment.Status = status
	order.Payment.PaymentID = paymentID
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
