package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type CandyResponse struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type AddItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type CartLineResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
	Empty bool               `json:"empty"`
}

// CheckoutRequest carries the payment instrument details. Method selects the
// variant: "credit_card" uses CardNumber/HolderName, "paypal" uses Email.
type CheckoutRequest struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	HolderName string `json:"holder_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

type OrderResponse struct {
	OrderID   string             `json:"order_id"`
	Total     decimal.Decimal    `json:"total"`
	Outcome   string             `json:"outcome"`
	ReceiptID string             `json:"receipt_id,omitempty"`
	Lines     []CartLineResponse `json:"lines,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type RefundRequest struct {
	Method     string          `json:"method"`
	CardNumber string          `json:"card_number,omitempty"`
	HolderName string          `json:"holder_name,omitempty"`
	Email      string          `json:"email,omitempty"`
	OrderID    string          `json:"order_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

type RefundResponse struct {
	Message   string `json:"message"`
	ReceiptID string `json:"receipt_id"`
}

type UpdateInventoryRequest struct {
	Quantity int `json:"quantity"`
}

type SalesReportResponse struct {
	Orders     int             `json:"orders"`
	TotalSales decimal.Decimal `json:"total_sales"`
	AvgOrder   decimal.Decimal `json:"avg_order"`
	Summary    string          `json:"summary"`
}
