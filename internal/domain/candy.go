package domain

import "github.com/shopspring/decimal"

// Candy is a catalog item. Stock changes go through SetQuantity so the
// non-negative invariant holds.
type Candy struct {
	SKU      string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

func (c *Candy) SetQuantity(newQuantity int) error {
	if newQuantity < 0 {
		return newValidationError("quantity", "inventory quantity cannot be negative")
	}
	c.Quantity = newQuantity
	return nil
}
