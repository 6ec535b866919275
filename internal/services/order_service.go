package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Order pricing policy.
const (
	TaxRate               = 0.15
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 10.0
)

// OrderEventPublisher publishes order lifecycle events to the message
// broker. Publishing is best-effort; a broker outage must not fail the
// order.
type OrderEventPublisher interface {
	PublishOrderEvent(event string, payload map[string]interface{}) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// appliedDecrement records stock already taken for a line, so a failure on a
// later line can give it back.
type appliedDecrement struct {
	productID string
	quantity  int
}

// CreateOrder validates the requested items against the catalog, takes
// stock, computes pricing, and persists the order as pending/unpaid. Stock
// is taken per product with an atomic conditional decrement; if any line
// fails (or the order cannot be persisted), every decrement already applied
// is compensated so a rejected order never leaves stock partially consumed.
func (s *OrderService) CreateOrder(userID string, items []models.OrderItem, address models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrBadRequest)
	}

	var (
		itemsPrice float64
		snapshots  []models.OrderItem
		applied    []appliedDecrement
	)

	rollback := func() {
		for _, d := range applied {
			if err := s.productRepo.IncrementStock(d.productID, d.quantity); err != nil {
				log.Printf("Failed to compensate stock for product %s: %v", d.productID, err)
			}
		}
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			rollback()
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", ErrBadRequest, item.ProductID)
		}

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("%w: product %s not found", ErrBadRequest, item.ProductID)
		}

		if err := s.productRepo.DecrementStock(product.ID, item.Quantity); err != nil {
			rollback()
			if errors.Is(err, repositories.ErrInsufficientStock) {
				// Re-read so the reported availability reflects stock
				// after any concurrent orders, not the earlier lookup.
				available := product.Stock
				if fresh, lookupErr := s.productRepo.GetByID(product.ID); lookupErr == nil {
					available = fresh.Stock
				}
				return nil, fmt.Errorf("%w: %s (requested %d, available %d)", ErrOutOfStock, product.Name, item.Quantity, available)
			}
			return nil, fmt.Errorf("failed to reserve stock for product %s: %w", product.ID, err)
		}
		applied = append(applied, appliedDecrement{productID: product.ID, quantity: item.Quantity})

		unitPrice := product.EffectivePrice()
		snapshots = append(snapshots, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     unitPrice,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Flavor:    item.Flavor,
		})
		itemsPrice += unitPrice * float64(item.Quantity)
	}

	taxPrice := round2(itemsPrice * TaxRate)
	shippingPrice := FlatShippingFee
	if itemsPrice > FreeShippingThreshold {
		shippingPrice = 0
	}

	now := time.Now()
	order := &models.Order{
		ID:              uuid.New().String(),
		OrderNumber:     generateOrderNumber(now),
		UserID:          userID,
		Items:           snapshots,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      round2(itemsPrice),
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      round2(itemsPrice + taxPrice + shippingPrice),
		IsPaid:          false,
		IsDelivered:     false,
		Status:          models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish("order.created", map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
		"status":      order.Status,
		"total":       order.TotalPrice,
	})

	return order, nil
}

// FindMyOrders returns all orders owned by the user, newest first.
func (s *OrderService) FindMyOrders(userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.orderRepo.GetByUserID(userID)
}

// UpdateOrderToPaid marks an order as paid with the gateway's confirmation
// payload. The order must belong to the acting user.
func (s *OrderService) UpdateOrderToPaid(orderID, userID string, result models.PaymentResult) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order %s does not belong to user", ErrForbidden, orderID)
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.Status = models.OrderStatusProcessing
	order.PaymentResult = result

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	s.publish("order.paid", map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
		"status":      order.Status,
	})

	return order, nil
}

// publish sends an order event if a publisher is wired, logging failures
// instead of surfacing them.
func (s *OrderService) publish(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Order event publisher is not initialized. Skipping message publication.")
		return
	}
	if err := s.publisher.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}

// generateOrderNumber builds a human-referenceable order number from a
// timestamp prefix and a random suffix. Uniqueness is additionally enforced
// by the database index on the column.
func generateOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102150405"), suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
