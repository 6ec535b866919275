package cart

import (
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// Shipping policy defaults for the cart. Orders above the threshold ship
// free; everything else pays the flat fee. SetShipping overrides both.
const (
	FreeShippingThreshold = 1000.0
	FlatShippingFee       = 50.0
)

// LineItem is a single entry in the cart: one product/size/flavor
// combination and its quantity. The unit price is snapshotted when the item
// is added.
type LineItem struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Size       string  `json:"size,omitempty"`
	Flavor     string  `json:"flavor,omitempty"`
	TotalPrice float64 `json:"total_price"`
}

// State is the full cart snapshot. Items keep insertion order; every derived
// field (TotalItems, Subtotal, Shipping, Total) is recomputed from Items
// after each mutation, never patched incrementally.
type State struct {
	Items       []LineItem `json:"items"`
	TotalItems  int        `json:"total_items"`
	Subtotal    float64    `json:"subtotal"`
	Discount    float64    `json:"discount"`
	Shipping    float64    `json:"shipping"`
	Total       float64    `json:"total"`
	ShippingSet bool       `json:"shipping_set"` // true once the caller picked a shipping tier
}

// Engine owns the cart state and persists it through a Store after every
// mutation. It is a synchronous, single-caller state machine: operations
// never fail on bad input (unknown ids and non-positive add quantities are
// no-ops), only persistence can return an error.
type Engine struct {
	state State
	store Store
}

// NewEngine rehydrates the cart from the store. An empty store yields an
// empty cart.
func NewEngine(store Store) (*Engine, error) {
	e := &Engine{store: store}
	if store != nil {
		saved, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load cart state: %w", err)
		}
		if saved != nil {
			e.state = *saved
		}
	}
	e.recompute()
	return e, nil
}

// State returns a copy of the current cart snapshot.
func (e *Engine) State() State {
	s := e.state
	s.Items = make([]LineItem, len(e.state.Items))
	copy(s.Items, e.state.Items)
	return s
}

// AddItem puts a product into the cart. A line with the same product, size
// and flavor is merged by incrementing its quantity; otherwise a new line is
// appended with a fresh id. The unit price comes from the selected size
// variant when one is chosen, else the product's effective price. A
// non-positive quantity leaves the cart unchanged.
func (e *Engine) AddItem(product *models.Product, quantity int, size, flavor string) error {
	if product == nil || quantity <= 0 {
		return nil
	}

	price := product.EffectivePrice()
	if size != "" {
		for _, v := range product.Sizes {
			if v.Label == size {
				price = v.Price
				break
			}
		}
	}

	merged := false
	for i := range e.state.Items {
		item := &e.state.Items[i]
		if item.ProductID == product.ID && item.Size == size && item.Flavor == flavor {
			item.Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		e.state.Items = append(e.state.Items, LineItem{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			Quantity:  quantity,
			Size:      size,
			Flavor:    flavor,
		})
	}

	return e.commit()
}

// RemoveItem deletes the line with the given id. Unknown ids are a no-op.
func (e *Engine) RemoveItem(lineID string) error {
	for i := range e.state.Items {
		if e.state.Items[i].ID == lineID {
			e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
			return e.commit()
		}
	}
	return nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line, same as RemoveItem. Unknown ids are a no-op.
func (e *Engine) UpdateQuantity(lineID string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveItem(lineID)
	}
	for i := range e.state.Items {
		if e.state.Items[i].ID == lineID {
			e.state.Items[i].Quantity = quantity
			return e.commit()
		}
	}
	return nil
}

// ClearCart resets the cart to its empty initial state, dropping any
// discount and shipping override.
func (e *Engine) ClearCart() error {
	e.state = State{}
	return e.commit()
}

// ApplyDiscount sets the absolute discount amount. Negative amounts clamp
// to zero.
func (e *Engine) ApplyDiscount(amount float64) error {
	if amount < 0 {
		amount = 0
	}
	e.state.Discount = amount
	return e.commit()
}

// SetShipping overrides the shipping policy with an explicit fee, letting
// the caller pick a shipping tier. The override holds until ClearCart.
func (e *Engine) SetShipping(amount float64) error {
	if amount < 0 {
		amount = 0
	}
	e.state.Shipping = amount
	e.state.ShippingSet = true
	return e.commit()
}

// OrderItems converts the cart lines into order item snapshots for checkout
// submission.
func (e *Engine) OrderItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(e.state.Items))
	for _, line := range e.state.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Flavor:    line.Flavor,
		})
	}
	return items
}

// commit recomputes derived totals and persists the full state.
func (e *Engine) commit() error {
	e.recompute()
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(e.state); err != nil {
		return fmt.Errorf("failed to persist cart state: %w", err)
	}
	return nil
}

// recompute rebuilds every derived field from the item list.
func (e *Engine) recompute() {
	totalItems := 0
	subtotal := 0.0
	for i := range e.state.Items {
		item := &e.state.Items[i]
		item.TotalPrice = item.Price * float64(item.Quantity)
		totalItems += item.Quantity
		subtotal += item.TotalPrice
	}
	e.state.TotalItems = totalItems
	e.state.Subtotal = subtotal

	if !e.state.ShippingSet {
		if len(e.state.Items) == 0 || subtotal > FreeShippingThreshold {
			e.state.Shipping = 0
		} else {
			e.state.Shipping = FlatShippingFee
		}
	}

	e.state.Total = subtotal - e.state.Discount + e.state.Shipping
}
