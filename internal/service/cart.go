package service

import (
	"fmt"

	"go-pos-terminal/internal/model"

	"github.com/shopspring/decimal"
)

type CustomerMode int

const (
	CustomerNone CustomerMode = iota
	CustomerExisting
	CustomerNew
)

// CustomerSelection says who the sale is for. ID is used with CustomerExisting,
// New with CustomerNew; the new customer is saved in the same commit as the sale.
type CustomerSelection struct {
	Mode CustomerMode
	ID   uint
	New  *model.Customer
}

// CartLine snapshots a product's name and price at the time it was added
type CartLine struct {
	ProductID uint
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the lines of one sale in progress. Nothing is persisted until
// SaleService.Finalize. The zero value is an empty cart.
type Cart struct {
	lines    []CartLine
	customer CustomerSelection
}

func NewCart() *Cart {
	return &Cart{}
}

// Add merges qty into the line for the product, or appends a new line
func (c *Cart) Add(productID uint, name string, price decimal.Decimal, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Name: name, Price: price, Quantity: qty})
	return nil
}

// QuantityOf returns how many units of a product the cart already holds
func (c *Cart) QuantityOf(productID uint) int {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// RemoveLine takes qty off the line at index (0-based); the line is dropped at zero
func (c *Cart) RemoveLine(index, qty int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("cart line %d %w", index+1, ErrNotFound)
	}
	if qty <= 0 || qty > c.lines[index].Quantity {
		return ErrInvalidQuantity
	}
	c.lines[index].Quantity -= qty
	if c.lines[index].Quantity <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
	}
	return nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the current lines
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) SelectCustomer(sel CustomerSelection) {
	c.customer = sel
}

func (c *Cart) Customer() CustomerSelection {
	return c.customer
}

// Clear empties the lines and forgets the selected customer
func (c *Cart) Clear() {
	c.lines = nil
	c.customer = CustomerSelection{}
}
