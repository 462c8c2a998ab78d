package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	RoleShopper = "shopper"
	RoleStaff   = "staff"
)

// Staff is a user with management abilities over inventory and reporting.
type Staff struct {
	*User
	Position string
}

func NewStaff(id, name, email, password, position string) (*Staff, error) {
	user, err := NewUser(id, name, email, password)
	if err != nil {
		return nil, err
	}
	return &Staff{User: user, Position: strings.TrimSpace(position)}, nil
}

// UpdateInventory sets a candy's stock level, rejecting negative amounts.
func (s *Staff) UpdateInventory(candy *Candy, newQuantity int) error {
	return candy.SetQuantity(newQuantity)
}

// SalesReport summarizes a set of orders: count, gross total and average.
func SalesReport(orders []*Order) string {
	count := len(orders)
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.Total)
	}
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count)))
	}
	return fmt.Sprintf("Orders: %d | Total sales: $%s | Avg order: $%s",
		count, total.StringFixed(2), avg.StringFixed(2))
}
