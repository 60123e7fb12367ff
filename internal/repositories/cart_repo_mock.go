package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]models.CartItem // keyed by item ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

// GetByUser returns all cart lines for a user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.CartItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			itemList = append(itemList, item)
		}
	}
	sort.Slice(itemList, func(i, j int) bool { return itemList[i].ID < itemList[j].ID })
	return itemList, nil
}

// Add stores a new cart line, merging quantity into an existing line
// for the same product.
func (r *MockCartRepository) Add(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			r.items[id] = existing
			*item = existing
			return nil
		}
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// UpdateQuantity sets the quantity of a cart line.
func (r *MockCartRepository) UpdateQuantity(userID, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return fmt.Errorf("cart item %s not found for quantity update", itemID)
	}
	item.Quantity = quantity
	r.items[itemID] = item
	return nil
}

// Remove deletes a cart line; absent lines are a no-op.
func (r *MockCartRepository) Remove(userID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if ok && item.UserID == userID {
		delete(r.items, itemID)
	}
	return nil
}

// Clear deletes all cart lines for a user.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}
