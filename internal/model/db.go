package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID             string `gorm:"primaryKey;size:64;not null"`
	Name           string `gorm:"size:128;not null"`
	Email          string `gorm:"size:128;uniqueIndex;not null"`
	PasswordSalt   string `gorm:"size:64;not null"` // hex
	PasswordDigest string `gorm:"size:64;not null"` // hex sha256(salt || plaintext)
	Status         string `gorm:"size:32;not null"` // active, suspended
	Role           string `gorm:"size:32;not null"` // shopper, staff
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Candy struct {
	SKU       string          `gorm:"primaryKey;size:64;not null"`
	Name      string          `gorm:"size:128;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"` // stock on hand
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	OrderID     string          `gorm:"primaryKey;size:64;not null"`
	AccountID   string          `gorm:"size:64;index;not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      string          `gorm:"size:32;index;not null"` // PAID, FAILED
	ReceiptID   string          `gorm:"size:64"`
	CreatedAt   time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.order_id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → candy.sku
	SKU       string          `gorm:"size:64;index;not null"`
	Name      string          `gorm:"size:128;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	CreatedAt time.Time
}

type PaymentTransaction struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   string          `gorm:"size:64;index"`
	Method    string          `gorm:"size:32;not null"` // Credit Card, PayPal
	Kind      string          `gorm:"size:16;not null"` // payment, refund
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReceiptID string          `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
}
