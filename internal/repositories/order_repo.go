package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error) // newest first
	Create(order *models.Order) error
	Update(order *models.Order) error
}
