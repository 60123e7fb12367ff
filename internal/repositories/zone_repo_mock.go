package repositories

import (
	"fmt"
	"sync"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// MockDeliveryZoneRepository is an in-memory implementation of DeliveryZoneRepository.
type MockDeliveryZoneRepository struct {
	zones map[string]models.DeliveryZone // keyed by pincode
	mu    sync.RWMutex
}

// NewMockDeliveryZoneRepository creates a new instance of MockDeliveryZoneRepository.
func NewMockDeliveryZoneRepository() *MockDeliveryZoneRepository {
	return &MockDeliveryZoneRepository{
		zones: make(map[string]models.DeliveryZone),
	}
}

// GetByPincode returns the delivery zone for a pincode.
func (r *MockDeliveryZoneRepository) GetByPincode(pincode string) (*models.DeliveryZone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zone, ok := r.zones[pincode]
	if !ok {
		return nil, fmt.Errorf("pincode %s not found", pincode)
	}
	return &zone, nil
}

// Create stores a new delivery zone.
func (r *MockDeliveryZoneRepository) Create(zone *models.DeliveryZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.zones[zone.Pincode] = *zone
	return nil
}
