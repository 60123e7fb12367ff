package repositories

import (
	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// DeliveryZoneRepository defines the interface for pincode
// deliverability lookups.
type DeliveryZoneRepository interface {
	GetByPincode(pincode string) (*models.DeliveryZone, error)
	Create(zone *models.DeliveryZone) error
}
