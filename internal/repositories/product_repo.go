package repositories

import (
	"errors"

	"storefront/internal/models"
)

// ErrInsufficientStock is returned by DecrementStock when the conditional
// update finds less stock than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(page, limit int) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetFeatured() ([]models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	Search(query string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	// DecrementStock atomically takes quantity units from the product's
	// stock, failing with ErrInsufficientStock when not enough remain.
	// IncrementStock gives units back, used to compensate a partially
	// applied order.
	DecrementStock(id string, quantity int) error
	IncrementStock(id string, quantity int) error
}
