package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All order
// routes require authentication; the JWT middleware must run before them.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my-orders", h.HandleMyOrders)
	orderRoutes.Put("/:id/pay", h.HandlePayOrder)
}

// userIDFromContext reads the authenticated user id placed in Locals by the
// JWT middleware.
func userIDFromContext(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// CreateOrderRequest is the request body for order creation.
type CreateOrderRequest struct {
	OrderItems      []models.OrderItem     `json:"order_items" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method" validate:"required"`
}

// HandleCreateOrder materializes the submitted cart into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	order, err := h.service.CreateOrder(userIDFromContext(c), req.OrderItems, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleMyOrders returns the caller's orders, newest first.
func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.FindMyOrders(userIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}

// PayOrderRequest is the request body for payment confirmation.
type PayOrderRequest struct {
	PaymentResult models.PaymentResult `json:"payment_result"`
}

// HandlePayOrder marks an order as paid with the gateway confirmation.
func (h *OrderHandler) HandlePayOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req PayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	order, err := h.service.UpdateOrderToPaid(orderID, userIDFromContext(c), req.PaymentResult)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(order)
}
