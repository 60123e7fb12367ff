package repositories

import (
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// OrderRepository defines the interface for order data access. The
// stored row is the authoritative copy; tracking and payment fields
// move only through the dedicated update methods so transition checks
// can sit in front of them.
type OrderRepository interface {
	GetAllByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByPaymentSession(sessionID string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	UpdateTracking(id string, status string, at time.Time) error
	AttachPaymentSession(id string, sessionID string) error
	UpdatePayment(id string, status string, paymentID string) error
}
