package repositories

import (
	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// CartRepository defines the interface for server-side cart data access.
// Remove is a no-op for an absent line; Clear wipes a user's cart
// wholesale.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	Add(item *models.CartItem) error
	UpdateQuantity(userID, itemID string, quantity int) error
	Remove(userID, itemID string) error
	Clear(userID string) error
}
