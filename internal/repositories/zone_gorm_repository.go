package repositories

import (
	"fmt"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"gorm.io/gorm"
)

// GORMDeliveryZoneRepository is a GORM implementation of DeliveryZoneRepository.
type GORMDeliveryZoneRepository struct {
	db *gorm.DB
}

// NewGORMDeliveryZoneRepository creates a new instance of GORMDeliveryZoneRepository.
func NewGORMDeliveryZoneRepository(db *gorm.DB) *GORMDeliveryZoneRepository {
	return &GORMDeliveryZoneRepository{
		db: db,
	}
}

// GetByPincode retrieves the delivery zone for a pincode.
func (r *GORMDeliveryZoneRepository) GetByPincode(pincode string) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	if err := r.db.First(&zone, "pincode = ?", pincode).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("pincode %s not found", pincode)
		}
		return nil, fmt.Errorf("failed to get delivery zone for pincode %s: %w", pincode, err)
	}
	return &zone, nil
}

// Create creates a new delivery zone in the database.
func (r *GORMDeliveryZoneRepository) Create(zone *models.DeliveryZone) error {
	if err := r.db.Create(zone).Error; err != nil {
		return fmt.Errorf("failed to create delivery zone: %w", err)
	}
	return nil
}
