package repositories

import (
	"fmt"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"gorm.io/gorm"
)

// GORMReturnRepository is a GORM implementation of ReturnRepository.
type GORMReturnRepository struct {
	db *gorm.DB
}

// NewGORMReturnRepository creates a new instance of GORMReturnRepository.
func NewGORMReturnRepository(db *gorm.DB) *GORMReturnRepository {
	return &GORMReturnRepository{
		db: db,
	}
}

// Create persists a new return request.
func (r *GORMReturnRepository) Create(request *models.ReturnRequest) error {
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}
	request.UpdatedAt = request.RequestedAt
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create return request: %w", err)
	}
	return nil
}

// GetByID retrieves a return request by its ID.
func (r *GORMReturnRepository) GetByID(id string) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	if err := r.db.Preload("Products").First(&request, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("return with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get return by ID %s: %w", id, err)
	}
	return &request, nil
}

// GetLatestByOrder retrieves the most recent return request for an
// order. No request yet is not an error: it returns (nil, nil).
func (r *GORMReturnRepository) GetLatestByOrder(orderID string) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	if err := r.db.Preload("Products").Where("order_id = ?", orderID).Order("requested_at DESC").First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest return for order %s: %w", orderID, err)
	}
	return &request, nil
}

// GetAllByUser retrieves a user's return requests, newest first.
func (r *GORMReturnRepository) GetAllByUser(userID string) ([]models.ReturnRequest, error) {
	var requests []models.ReturnRequest
	if err := r.db.Preload("Products").Where("user_id = ?", userID).Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to get returns for user %s: %w", userID, err)
	}
	return requests, nil
}

// UpdateStatus stamps a new lifecycle stage onto a return request.
func (r *GORMReturnRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.ReturnRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update return status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("return with ID %s not found for status update", id)
	}
	return nil
}
