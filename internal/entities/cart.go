package entities

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CartLine holds one medicine and its quantity. A cart keeps at most
// one line per medicine id.
type CartLine struct {
	Medicine Medicine
	Quantity int
}

// Cart is the working set of lines for one customer session. All
// operations are total: bad ids and non-positive quantities are
// treated as no-ops or removals, never as errors.
type Cart struct {
	Lines []CartLine
}

type CartTotals struct {
	TotalItems int
	TotalPrice decimal.Decimal
}

// AddItem merges into an existing line for the same medicine or
// appends a new one. Quantities below 1 are clamped to 1.
func (c *Cart) AddItem(m Medicine, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].Medicine.ID == m.ID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Medicine: m, Quantity: quantity})
}

func (c *Cart) RemoveItem(medicineID string) {
	for i := range c.Lines {
		if c.Lines[i].Medicine.ID == medicineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the line's quantity. Zero or negative
// quantity removes the line.
func (c *Cart) UpdateQuantity(medicineID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(medicineID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Medicine.ID == medicineID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// Totals is recomputed from the lines on every call, never cached.
func (c *Cart) Totals() CartTotals {
	totals := CartTotals{TotalPrice: decimal.Zero}
	for _, line := range c.Lines {
		totals.TotalItems += line.Quantity
		totals.TotalPrice = totals.TotalPrice.Add(
			line.Medicine.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		)
	}
	return totals
}

var ErrEmptyCart = errors.New("cart is empty")
