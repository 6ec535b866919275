package services

import (
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetProducts retrieves a page of products.
func (s *ProductService) GetProducts(page, limit int) ([]models.Product, error) {
	return s.repo.GetAll(page, limit)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return product, nil
}

// GetFeaturedProducts retrieves all products flagged as featured.
func (s *ProductService) GetFeaturedProducts() ([]models.Product, error) {
	return s.repo.GetFeatured()
}

// GetProductsByCategory retrieves all products in a category.
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.repo.GetByCategory(category)
}

// SearchProducts performs a case-insensitive substring search over product
// names and descriptions. A blank query is rejected rather than listing the
// whole catalog.
func (s *ProductService) SearchProducts(query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrBadRequest)
	}
	return s.repo.Search(query)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if _, err := s.repo.GetByID(product.ID); err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, product.ID)
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return s.repo.Delete(id)
}
