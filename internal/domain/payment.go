package domain

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionPayment TransactionKind = "payment"
	TransactionRefund  TransactionKind = "refund"
)

// Transaction is one entry in an instrument's history.
type Transaction struct {
	Kind      TransactionKind
	Amount    decimal.Decimal
	ReceiptID string
}

// PaymentMethod is a payment instrument. Validity is decided once at
// construction; ProcessPayment is gated on it, Refund is not.
type PaymentMethod interface {
	Name() string
	Valid() bool
	ProcessPayment(amount decimal.Decimal) bool
	Refund(amount decimal.Decimal) string
	Transactions() []Transaction
}

// instrument holds the state shared by every payment method variant. The
// history is append-only and insertion-ordered.
type instrument struct {
	name  string
	valid bool

	mu      sync.Mutex
	history []Transaction
}

func (i *instrument) Name() string { return i.name }
func (i *instrument) Valid() bool  { return i.valid }

func (i *instrument) Transactions() []Transaction {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]Transaction, len(i.history))
	copy(out, i.history)
	return out
}

func (i *instrument) record(kind TransactionKind, amount decimal.Decimal) string {
	receipt := uuid.NewString()
	i.mu.Lock()
	i.history = append(i.history, Transaction{Kind: kind, Amount: amount, ReceiptID: receipt})
	i.mu.Unlock()
	return receipt
}

// ProcessPayment charges the instrument. An invalid instrument declines and
// leaves the history untouched.
func (i *instrument) ProcessPayment(amount decimal.Decimal) bool {
	if !i.valid {
		return false
	}
	i.record(TransactionPayment, amount)
	return true
}

// Refund is not gated on validity: an instrument that can no longer pay can
// still be refunded to.
func (i *instrument) Refund(amount decimal.Decimal) string {
	receipt := i.record(TransactionRefund, amount)
	return fmt.Sprintf("Refund of $%s issued. Receipt ID: %s", amount.StringFixed(2), receipt)
}

var cardNumberRe = regexp.MustCompile(`^\d{13,19}$`)

// CreditCard is valid when its number is 13 to 19 digits, no separators.
type CreditCard struct {
	instrument
	cardNumber string
	holderName string
}

func NewCreditCard(cardNumber, holderName string) *CreditCard {
	return &CreditCard{
		instrument: instrument{name: "Credit Card", valid: cardNumberRe.MatchString(cardNumber)},
		cardNumber: cardNumber,
		holderName: holderName,
	}
}

var paypalEmailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PayPal is valid when its email looks like local@domain.tld.
type PayPal struct {
	instrument
	email string
}

func NewPayPal(email string) *PayPal {
	return &PayPal{
		instrument: instrument{name: "PayPal", valid: paypalEmailRe.MatchString(email)},
		email:      email,
	}
}
