package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order of ids, for stable listings
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

func (r *MockProductRepository) ordered() []models.Product {
	list := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			list = append(list, p)
		}
	}
	return list
}

// GetAll returns a page of products in insertion order.
func (r *MockProductRepository) GetAll(page, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	all := r.ordered()
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Product{}, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// GetFeatured returns all products flagged as featured.
func (r *MockProductRepository) GetFeatured() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Product
	for _, p := range r.ordered() {
		if p.IsFeatured {
			list = append(list, p)
		}
	}
	return list, nil
}

// GetByCategory returns all products in a category.
func (r *MockProductRepository) GetByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Product
	for _, p := range r.ordered() {
		if p.Category == category {
			list = append(list, p)
		}
	}
	return list, nil
}

// Search matches the query case-insensitively against name and descriptions.
func (r *MockProductRepository) Search(query string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var list []models.Product
	for _, p := range r.ordered() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.ShortDescription), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			list = append(list, p)
		}
	}
	return list, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock takes stock under the repository lock so the check and the
// write cannot interleave with another caller.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found", id)
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}
	product.Stock -= quantity
	r.products[id] = product
	return nil
}

// IncrementStock returns stock taken by a failed order.
func (r *MockProductRepository) IncrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found", id)
	}
	product.Stock += quantity
	r.products[id] = product
	return nil
}
