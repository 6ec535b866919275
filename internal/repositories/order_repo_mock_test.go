package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func TestMockOrderRepository_CreateAndGetByID(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	order := models.Order{
		OrderNumber: "ORD-20250101000000-ABCDEF",
		UserID:      "user-1",
		Status:      models.OrderStatusPending,
		TotalPrice:  1495.00,
	}
	assert.NoError(t, repo.Create(&order))
	assert.NotEmpty(t, order.ID) // id assigned on create
	assert.False(t, order.CreatedAt.IsZero())

	got, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
	assert.Equal(t, "user-1", got.UserID)

	_, err = repo.GetByID("no-such-order")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMockOrderRepository_GetByUserID_NewestFirst(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	for _, number := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		order := models.Order{OrderNumber: number, UserID: "user-1", Status: models.OrderStatusPending}
		assert.NoError(t, repo.Create(&order))
		time.Sleep(2 * time.Millisecond) // distinct creation timestamps
	}
	other := models.Order{OrderNumber: "ORD-X", UserID: "user-2", Status: models.OrderStatusPending}
	assert.NoError(t, repo.Create(&other))

	orders, err := repo.GetByUserID("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 3)

	// Only the owner's orders, most recent creation first.
	assert.Equal(t, "ORD-C", orders[0].OrderNumber)
	assert.Equal(t, "ORD-B", orders[1].OrderNumber)
	assert.Equal(t, "ORD-A", orders[2].OrderNumber)
	for _, o := range orders {
		assert.Equal(t, "user-1", o.UserID)
	}

	// A user with no orders gets an empty result, not an error.
	orders, err = repo.GetByUserID("user-3")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMockOrderRepository_Update(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	order := models.Order{OrderNumber: "ORD-A", UserID: "user-1", Status: models.OrderStatusPending}
	assert.NoError(t, repo.Create(&order))

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.Status = models.OrderStatusProcessing
	assert.NoError(t, repo.Update(&order))

	got, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.NotNil(t, got.PaidAt)
	assert.Equal(t, models.OrderStatusProcessing, got.Status)

	missing := models.Order{ID: "no-such-order", Status: models.OrderStatusPending}
	err = repo.Update(&missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
