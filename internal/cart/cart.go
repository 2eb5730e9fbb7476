// Package cart holds the in-memory cart aggregate. It performs no I/O;
// persistence is the session layer's job, behind the store port.
package cart

import (
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/models"
)

// Cart is an ordered sequence of line items. Insertion order is display
// order. The zero value is an empty, not-ready cart; Restore marks it ready
// so the session layer never persists a state that predates the first load.
type Cart struct {
	items []models.CartLineItem
	ready bool
}

func New() *Cart {
	return &Cart{}
}

// Restore installs a previously persisted item list and marks the cart ready.
// Restoring nil yields an empty ready cart.
func (c *Cart) Restore(items []models.CartLineItem) {
	c.items = make([]models.CartLineItem, len(items))
	copy(c.items, items)
	c.ready = true
}

// Ready reports whether the initial load has happened. Persisting before
// ready would clobber a stored cart with the empty initial state.
func (c *Cart) Ready() bool {
	return c.ready
}

func (c *Cart) Items() []models.CartLineItem {
	out := make([]models.CartLineItem, len(c.items))
	copy(out, c.items)

	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// AddItem adds one unit of a plain catalog product. If a non-custom line with
// the same product id already exists its quantity is incremented; otherwise a
// new line with quantity 1 is appended. Total function, never fails.
func (c *Cart) AddItem(req models.AddItemRequest) models.CartLineItem {
	for i := range c.items {
		if c.items[i].ID == req.ProductID && !c.items[i].IsCustom() {
			c.items[i].Quantity++

			return c.items[i]
		}
	}

	line := models.CartLineItem{
		ID:          req.ProductID,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Quantity:    1,
		AddedAt:     time.Now().UTC(),
	}
	c.items = append(c.items, line)

	return line
}

// AddCustomItem always appends: two custom orders for the same base product
// are distinct purchases. AddedAt is stamped only when the caller did not
// provide one. Approved/pending counts are snapshotted at add time and never
// reconciled afterwards.
func (c *Cart) AddCustomItem(line models.CartLineItem) models.CartLineItem {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now().UTC()
	}

	if line.IsCustom() && line.ApprovedCount == nil && line.PendingCount == nil {
		approved, pending := countByStatus(line.CustomImages)
		line.ApprovedCount = &approved
		line.PendingCount = &pending
	}

	c.items = append(c.items, line)

	return line
}

func countByStatus(images []models.CustomImage) (approved, pending int) {
	for _, img := range images {
		switch img.UploadStatus {
		case models.UploadStatusApproved:
			approved++
		case models.UploadStatusPending:
			pending++
		}
	}

	return approved, pending
}

// RemoveItem drops every line with the given product id. No-op when absent.
// The removed lines are returned so callers can release attached resources
// (temp images) upstream.
func (c *Cart) RemoveItem(productID int64) []models.CartLineItem {
	var removed []models.CartLineItem

	kept := c.items[:0]

	for _, item := range c.items {
		if item.ID == productID {
			removed = append(removed, item)
		} else {
			kept = append(kept, item)
		}
	}

	c.items = kept

	return removed
}

// UpdateQuantity sets the quantity of every line with the given product id.
// A quantity of zero or less removes the line; that is policy, not an error.
// No-op when the id is absent.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)

		return
	}

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items[i].Quantity = quantity
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Total is Σ(price × quantity) over all lines. Always recomputed, never
// stored.
func (c *Cart) Total() float64 {
	var total float64

	for _, item := range c.items {
		total += item.Subtotal()
	}

	return total
}

// AssignOrderID stamps the given order id onto every line not yet attached
// to an order, returning how many lines were stamped. Lines that already
// carry an order id are left alone.
func (c *Cart) AssignOrderID(orderID string) int {
	var stamped int

	for i := range c.items {
		if c.items[i].OrderID == "" {
			c.items[i].OrderID = orderID
			stamped++
		}
	}

	return stamped
}

// UnassignedItems returns the lines not yet attached to a backend order.
func (c *Cart) UnassignedItems() []models.CartLineItem {
	var out []models.CartLineItem

	for _, item := range c.items {
		if item.OrderID == "" {
			out = append(out, item)
		}
	}

	return out
}

// OrderIDs returns the distinct, non-empty order ids across all lines in
// order of first occurrence.
func (c *Cart) OrderIDs() []string {
	var ids []string

	seen := make(map[string]struct{})

	for _, item := range c.items {
		if item.OrderID == "" {
			continue
		}

		if _, ok := seen[item.OrderID]; ok {
			continue
		}

		seen[item.OrderID] = struct{}{}
		ids = append(ids, item.OrderID)
	}

	return ids
}

// ItemByOrderID returns the first line carrying the given order id.
func (c *Cart) ItemByOrderID(orderID string) (models.CartLineItem, bool) {
	for _, item := range c.items {
		if item.OrderID == orderID {
			return item, true
		}
	}

	return models.CartLineItem{}, false
}

// ItemsByOrderID returns all lines carrying the given order id, preserving
// cart order.
func (c *Cart) ItemsByOrderID(orderID string) []models.CartLineItem {
	var out []models.CartLineItem

	for _, item := range c.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}

	return out
}
