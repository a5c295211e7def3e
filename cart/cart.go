// Package cart carries the client-side arithmetic of the cart screen: line
// totals, quantity bounds, and discount application. The server owns the
// cart itself; this is the view the user is looking at between responses.
package cart

import (
	"github.com/shopspring/decimal"

	errs "github.com/cookieshop/storefront/internal/errors"
)

// Line is a single product-quantity pairing within the cart.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Quantity  int
}

// Total returns the line's displayed price, unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the displayed cart state: the lines from the last server response
// and at most one active discount descriptor. The total is always recomputed
// from the undiscounted subtotal, never from an already-discounted figure.
type Cart struct {
	lines    []Line
	discount *Descriptor
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// SetLines replaces the cart lines with a fresh server response. Any active
// discount stays applied and is re-run against the new subtotal.
func (c *Cart) SetLines(lines []Line) {
	c.lines = lines
}

// Lines returns the current lines.
func (c *Cart) Lines() []Line {
	return c.lines
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Subtotal is the undiscounted sum of the line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Total is the displayed total: the subtotal with the active discount
// applied, or the subtotal itself when no discount is active.
func (c *Cart) Total() decimal.Decimal {
	subtotal := c.Subtotal()
	if c.discount == nil {
		return subtotal
	}
	return Apply(subtotal, *c.discount)
}

// ApplyDiscount makes d the active descriptor. At most one descriptor is
// active at a time: applying a second one replaces the first rather than
// stacking on the discounted total.
func (c *Cart) ApplyDiscount(d Descriptor) {
	c.discount = &d
}

// RemoveDiscount clears the active descriptor; the displayed total reverts
// to the undiscounted subtotal.
func (c *Cart) RemoveDiscount() {
	c.discount = nil
}

// ActiveDiscount returns the active descriptor, or nil.
func (c *Cart) ActiveDiscount() *Descriptor {
	return c.discount
}

// CheckQuantity validates a requested quantity for a product against the
// client-side bounds (at least 1, at most the product's stock). It must pass
// before any update request goes on the wire; the server remains the source
// of truth.
func (c *Cart) CheckQuantity(productID int64, quantity int) error {
	line := c.findLine(productID)
	if line == nil {
		return errs.ErrLineNotFound
	}
	if quantity < 1 {
		return errs.ErrQuantityTooLow
	}
	if quantity > line.Stock {
		return errs.Wrapf(errs.ErrInsufficientStock, "only %d in stock", line.Stock)
	}
	return nil
}

// UpdateQuantity applies a validated quantity change to the local view. The
// caller is expected to issue the matching update request and then refresh
// the lines from the response.
func (c *Cart) UpdateQuantity(productID int64, quantity int) error {
	if err := c.CheckQuantity(productID, quantity); err != nil {
		return err
	}
	c.findLine(productID).Quantity = quantity
	return nil
}

// RemoveLine drops a product from the local view.
func (c *Cart) RemoveLine(productID int64) error {
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return errs.ErrLineNotFound
}

func (c *Cart) findLine(productID int64) *Line {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return &c.lines[i]
		}
	}
	return nil
}
