package repositories

import (
	"fmt"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves all cart lines for a user.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// Add persists a new cart line. Adding the same product again merges
// into the existing line by bumping its quantity.
func (r *GORMCartRepository) Add(item *models.CartItem) error {
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(&existing).Error
	if err == nil {
		existing.Quantity += item.Quantity
		if saveErr := r.db.Save(&existing).Error; saveErr != nil {
			return fmt.Errorf("failed to merge cart line: %w", saveErr)
		}
		*item = existing
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up cart line: %w", err)
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add cart line: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of a cart line.
func (r *GORMCartRepository) UpdateQuantity(userID, itemID string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).Where("user_id = ? AND id = ?", userID, itemID).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s not found for quantity update", itemID)
	}
	return nil
}

// Remove deletes a cart line. Removing an absent line is a no-op.
func (r *GORMCartRepository) Remove(userID, itemID string) error {
	if err := r.db.Where("user_id = ? AND id = ?", userID, itemID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove cart item %s: %w", itemID, err)
	}
	return nil
}

// Clear deletes all cart lines for a user.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
