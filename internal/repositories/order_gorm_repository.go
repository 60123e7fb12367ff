package repositories

import (
	"fmt"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAllByUser retrieves a user's orders, newest first, with their line items.
func (r *GORMOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Products").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its line items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Products").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByPaymentSession retrieves the order attached to a payment-gateway session.
func (r *GORMOrderRepository) GetByPaymentSession(sessionID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Products").First(&order, "payment_session_id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no order for payment session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to get order by payment session %s: %w", sessionID, err)
	}
	return &order, nil
}

// Create persists a new order with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
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
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus updates the top-level status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	return nil
}

// UpdateTracking stamps a new tracking stage onto an order.
func (r *GORMOrderRepository) UpdateTracking(id string, status string, at time.Time) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"tracking_status":     status,
		"tracking_updated_at": at,
		"updated_at":          time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update order tracking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for tracking update", id)
	}
	return nil
}

// AttachPaymentSession links an open gateway session to an order.
func (r *GORMOrderRepository) AttachPaymentSession(id string, sessionID string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_session_id", sessionID)
	if res.Error != nil {
		return fmt.Errorf("failed to attach payment session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for payment session", id)
	}
	return nil
}

// UpdatePayment updates the payment descriptor of an order.
func (r *GORMOrderRepository) UpdatePayment(id string, status string, paymentID string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status":     status,
		"payment_payment_id": paymentID,
		"updated_at":         time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update order payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for payment update", id)
	}
	return nil
}
