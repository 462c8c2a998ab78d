package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine pairs a catalog item with the quantity being bought.
type CartLine struct {
	Candy    Candy
	Quantity int
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Candy.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ShoppingCart collects lines for a single owner. Lines keep insertion order;
// re-adding a SKU merges quantities into the existing line. The mutex
// serializes mutations so CreateOrder reads a consistent snapshot.
type ShoppingCart struct {
	OwnerID string

	mu    sync.Mutex
	lines []CartLine
	index map[string]int // sku -> position in lines
}

func NewShoppingCart(ownerID string) *ShoppingCart {
	return &ShoppingCart{
		OwnerID: ownerID,
		index:   make(map[string]int),
	}
}

func (c *ShoppingCart) AddItem(candy Candy, quantity int) error {
	if quantity <= 0 {
		return newValidationError("quantity", "must be positive")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if pos, ok := c.index[candy.SKU]; ok {
		c.lines[pos].Quantity += quantity
		return nil
	}
	c.index[candy.SKU] = len(c.lines)
	c.lines = append(c.lines, CartLine{Candy: candy, Quantity: quantity})
	return nil
}

func (c *ShoppingCart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range c.lines {
		if line.Quantity > 0 {
			return false
		}
	}
	return true
}

// Lines returns a copy of the current lines in insertion order.
func (c *ShoppingCart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// CreateOrder snapshots the current lines into an Order, charges the payment
// method for the total and stamps the outcome. A declined payment still
// returns the order, with OutcomeFailed; the caller decides what to do next.
func (c *ShoppingCart) CreateOrder(pm PaymentMethod) *Order {
	c.mu.Lock()
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	c.mu.Unlock()

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	order := &Order{
		ID:        uuid.NewString(),
		Lines:     lines,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	if pm.ProcessPayment(total) {
		order.stampOutcome(OutcomeSucceeded, lastReceipt(pm))
	} else {
		order.stampOutcome(OutcomeFailed, "")
	}
	return order
}

// Clear empties the cart; the cart itself stays usable for future adds.
func (c *ShoppingCart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[string]int)
}

func lastReceipt(pm PaymentMethod) string {
	txs := pm.Transactions()
	if len(txs) == 0 {
		return ""
	}
	return txs[len(txs)-1].ReceiptID
}
