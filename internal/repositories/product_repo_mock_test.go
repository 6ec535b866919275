package repositories_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func seededRepo(t *testing.T, count int) *repositories.MockProductRepository {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	for i := 0; i < count; i++ {
		p := models.Product{
			ID:    fmt.Sprintf("prod-%02d", i),
			Name:  fmt.Sprintf("Product %02d", i),
			Price: 10.0,
			Stock: 100,
		}
		assert.NoError(t, repo.Create(&p))
	}
	return repo
}

func TestMockProductRepository_Pagination(t *testing.T) {
	repo := seededRepo(t, 25)

	first, err := repo.GetAll(1, 10)
	assert.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Equal(t, "prod-00", first[0].ID)

	third, err := repo.GetAll(3, 10)
	assert.NoError(t, err)
	assert.Len(t, third, 5)
	assert.Equal(t, "prod-20", third[0].ID)

	// Past the end yields an empty page, not an error.
	empty, err := repo.GetAll(4, 10)
	assert.NoError(t, err)
	assert.Empty(t, empty)

	// Bad inputs fall back to defaults instead of failing.
	fallback, err := repo.GetAll(0, -1)
	assert.NoError(t, err)
	assert.Len(t, fallback, 20)
}

func TestMockProductRepository_DecrementStock(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	p := models.Product{ID: "p1", Name: "Coffee", Price: 180, Stock: 3}
	assert.NoError(t, repo.Create(&p))

	// Requesting more than available fails and leaves stock untouched.
	err := repo.DecrementStock("p1", 5)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	got, _ := repo.GetByID("p1")
	assert.Equal(t, 3, got.Stock)

	assert.NoError(t, repo.DecrementStock("p1", 2))
	got, _ = repo.GetByID("p1")
	assert.Equal(t, 1, got.Stock)

	assert.NoError(t, repo.IncrementStock("p1", 2))
	got, _ = repo.GetByID("p1")
	assert.Equal(t, 3, got.Stock)
}

func TestMockProductRepository_DecrementStockConcurrent(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	p := models.Product{ID: "p1", Name: "Coffee", Price: 180, Stock: 50}
	assert.NoError(t, repo.Create(&p))

	// 100 concurrent single-unit decrements against 50 units: exactly 50
	// may succeed, and stock never goes negative.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.DecrementStock("p1", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	got, _ := repo.GetByID("p1")
	assert.Equal(t, 0, got.Stock)
}

func TestMockProductRepository_Search(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	products := []models.Product{
		{ID: "p1", Name: "Single Origin Coffee", ShortDescription: "Whole bean arabica", Price: 180},
		{ID: "p2", Name: "Insulated Tumbler", Description: "Keeps coffee hot", Price: 300},
		{ID: "p3", Name: "Protein Powder", Price: 550},
	}
	for i := range products {
		assert.NoError(t, repo.Create(&products[i]))
	}

	// Matches across name and descriptions, case-insensitively.
	matches, err := repo.Search("COFFEE")
	assert.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.Search("arabica")
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, "p1", matches[0].ID)

	matches, err = repo.Search("nothing-matches")
	assert.NoError(t, err)
	assert.Empty(t, matches)
}
