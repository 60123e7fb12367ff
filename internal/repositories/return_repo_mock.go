package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// MockReturnRepository is an in-memory implementation of ReturnRepository.
type MockReturnRepository struct {
	requests map[string]models.ReturnRequest
	mu       sync.RWMutex
}

// NewMockReturnRepository creates a new instance of MockReturnRepository.
func NewMockReturnRepository() *MockReturnRepository {
	return &MockReturnRepository{
		requests: make(map[string]models.ReturnRequest),
	}
}

// Create stores a new return request.
func (r *MockReturnRepository) Create(request *models.ReturnRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}
	request.UpdatedAt = request.RequestedAt
	r.requests[request.ID] = *request
	return nil
}

// GetByID returns a return request by its ID.
func (r *MockReturnRepository) GetByID(id string) (*models.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("return with ID %s not found", id)
	}
	return &request, nil
}

// GetLatestByOrder returns the most recent request for an order, or
// (nil, nil) when none exists.
func (r *MockReturnRepository) GetLatestByOrder(orderID string) (*models.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.ReturnRequest
	for _, request := range r.requests {
		if request.OrderID != orderID {
			continue
		}
		request := request
		if latest == nil || request.RequestedAt.After(latest.RequestedAt) {
			latest = &request
		}
	}
	return latest, nil
}

// GetAllByUser returns a user's return requests, newest first.
func (r *MockReturnRepository) GetAllByUser(userID string) ([]models.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requestList := make([]models.ReturnRequest, 0)
	for _, request := range r.requests {
		if request.UserID == userID {
			requestList = append(requestList, request)
		}
	}
	sort.Slice(requestList, func(i, j int) bool {
		return requestList[i].RequestedAt.After(requestList[j].RequestedAt)
	})
	return requestList, nil
}

// UpdateStatus stamps a new lifecycle stage onto a return request.
func (r *MockReturnRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("return with ID %s not found for status update", id)
	}
	request.Status = status
	request.UpdatedAt = time.Now()
	r.requests[id] = request
	return nil
}
