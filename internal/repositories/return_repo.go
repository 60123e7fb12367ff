package repositories

import (
	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// ReturnRepository defines the interface for return-request data access.
// GetLatestByOrder returns the most recent request for an order, which
// is what eligibility checks look at.
type ReturnRepository interface {
	Create(request *models.ReturnRequest) error
	GetByID(id string) (*models.ReturnRequest, error)
	GetLatestByOrder(orderID string) (*models.ReturnRequest, error)
	GetAllByUser(userID string) ([]models.ReturnRequest, error)
	UpdateStatus(id string, status string) error
}
