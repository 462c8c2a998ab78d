package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeFailed    PaymentOutcome = "failed"
)

func (o PaymentOutcome) String() string { return string(o) }

// Order is an immutable snapshot of a checkout. The only write after
// construction is the single outcome stamp from CreateOrder.
type Order struct {
	ID        string
	Lines     []CartLine
	Total     decimal.Decimal
	Outcome   PaymentOutcome
	ReceiptID string
	CreatedAt time.Time
}

func (o *Order) stampOutcome(outcome PaymentOutcome, receiptID string) {
	o.Outcome = outcome
	o.ReceiptID = receiptID
}

func (o *Order) Paid() bool { return o.Outcome == OutcomeSucceeded }
