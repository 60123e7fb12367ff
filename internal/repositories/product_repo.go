package repositories

import (
	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// ProductRepository defines the interface for catalog lookups. The
// checkout core only reads products when building cart lines; catalog
// management lives outside this service.
type ProductRepository interface {
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
}
