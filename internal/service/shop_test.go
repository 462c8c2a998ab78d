package service

import (
	"context"
	"testing"

	"candy-shop/internal/domain"
	"candy-shop/internal/dto"
	"candy-shop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creditCardReq() *dto.CheckoutRequest {
	return &dto.CheckoutRequest{Method: "credit_card", CardNumber: "4111111111111111", HolderName: "Keanu"}
}

func TestAddToCartAndGetCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 4))

	cart, err := env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.False(t, cart.Empty)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "gummy_bears", cart.Lines[0].SKU)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("10.00")), "got %s", cart.Total)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	err := env.shop.AddToCart(ctx, userID, "gummy_bears", 0)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	cart, err := env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, cart.Empty)
}

func TestAddToCartUnknownSKU(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	err := env.shop.AddToCart(ctx, userID, "mystery_candy", 1)
	assert.Error(t, err)
}

func TestAddToCartWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	err := env.shop.AddToCart(context.Background(), "ghost-user", "gummy_bears", 1)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAddToCartRejectsInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	// seeded stock for gummy_bears is 200
	err := env.shop.AddToCart(ctx, userID, "gummy_bears", 1000)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	cart, err := env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, cart.Empty, "rejected add must not touch the cart")

	// the guard counts what is already in the cart
	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 150))
	err = env.shop.AddToCart(ctx, userID, "gummy_bears", 100)
	require.ErrorAs(t, err, &ve)

	cart, err = env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 150, cart.Lines[0].Quantity)
}

func TestCheckoutStockShortfallKeepsCartIntact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")
	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 4))

	// stock shrinks below the cart line after the add
	require.NoError(t, env.shop.UpdateInventory(ctx, "gummy_bears", 2))

	_, err := env.shop.Checkout(ctx, userID, creditCardReq())
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	// the failed checkout must not clear the cart or record an order
	cart, err := env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)

	orders, err := env.shop.ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	candy, err := env.candyRepo.FindBySKU(ctx, "gummy_bears")
	require.NoError(t, err)
	assert.Equal(t, 2, candy.Quantity, "stock untouched by the rejected checkout")
}

func TestCheckoutPersistsOrderAndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")
	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 4))

	order, err := env.shop.Checkout(ctx, userID, creditCardReq())
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSucceeded.String(), order.Outcome)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("10.00")))
	assert.NotEmpty(t, order.ReceiptID)

	// order row
	stored, err := env.orderRepo.FindByOrderID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", stored.Status)
	assert.Equal(t, userID, stored.AccountID)

	// item rows
	items, err := env.orderRepo.GetOrderItems(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "gummy_bears", items[0].SKU)
	assert.Equal(t, 4, items[0].Quantity)

	// payment transaction row
	txns, err := env.txnRepo.ListByOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, string(domain.TransactionPayment), txns[0].Kind)
	assert.Equal(t, order.ReceiptID, txns[0].ReceiptID)

	// stock decremented from the seeded 200
	candy, err := env.candyRepo.FindBySKU(ctx, "gummy_bears")
	require.NoError(t, err)
	assert.Equal(t, 196, candy.Quantity)

	// cart cleared
	cart, err := env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, cart.Empty)

	// order visible in history
	orders, err := env.shop.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderID, orders[0].OrderID)
}

func TestCheckoutDeclinedPayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")
	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 4))

	order, err := env.shop.Checkout(ctx, userID, &dto.CheckoutRequest{Method: "paypal", Email: "a@@b.co"})
	require.NoError(t, err, "declined payment is data, not an error")

	assert.Equal(t, domain.OutcomeFailed.String(), order.Outcome)
	assert.Empty(t, order.ReceiptID)

	stored, err := env.orderRepo.FindByOrderID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "FAILED", stored.Status)

	// no payment transaction rows for the declined attempt
	txns, err := env.txnRepo.ListByOrder(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Empty(t, txns)

	// stock untouched
	candy, err := env.candyRepo.FindBySKU(ctx, "gummy_bears")
	require.NoError(t, err)
	assert.Equal(t, 200, candy.Quantity)

	// cart still cleared
	cart, err := env.shop.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, cart.Empty)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	_, err := env.shop.Checkout(ctx, userID, creditCardReq())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	orders, err := env.shop.ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, orders, "empty-cart checkout must not create an order")
}

func TestCheckoutUnsupportedMethod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")
	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 1))

	_, err := env.shop.Checkout(ctx, userID, &dto.CheckoutRequest{Method: "barter"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRefundBypassesValidityAndIsPersisted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	// a card with a bad number can still receive a refund
	result, err := env.shop.Refund(ctx, userID, &dto.RefundRequest{
		Method:     "credit_card",
		CardNumber: "1234",
		Amount:     decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)

	assert.Contains(t, result.Message, "Refund of $7.50 issued.")
	assert.Contains(t, result.Message, result.ReceiptID)

	var txn model.PaymentTransaction
	require.NoError(t, env.db.Where("receipt_id = ?", result.ReceiptID).First(&txn).Error)
	assert.Equal(t, string(domain.TransactionRefund), txn.Kind)
	assert.Equal(t, "Credit Card", txn.Method)
}

func TestUpdateInventory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.shop.UpdateInventory(ctx, "gummy_bears", 42))

	candy, err := env.candyRepo.FindBySKU(ctx, "gummy_bears")
	require.NoError(t, err)
	assert.Equal(t, 42, candy.Quantity)

	err = env.shop.UpdateInventory(ctx, "gummy_bears", -1)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	candy, err = env.candyRepo.FindBySKU(ctx, "gummy_bears")
	require.NoError(t, err)
	assert.Equal(t, 42, candy.Quantity, "rejected update leaves stock unchanged")
}

func TestSalesSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerAndLogin(t, "keanu@candy.example")

	require.NoError(t, env.shop.AddToCart(ctx, userID, "gummy_bears", 4)) // 10.00
	_, err := env.shop.Checkout(ctx, userID, creditCardReq())
	require.NoError(t, err)

	require.NoError(t, env.shop.AddToCart(ctx, userID, "sour_worms", 2)) // 6.50
	_, err = env.shop.Checkout(ctx, userID, creditCardReq())
	require.NoError(t, err)

	report, err := env.reports.SalesSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Orders)
	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("16.50")), "got %s", report.TotalSales)
	assert.True(t, report.AvgOrder.Equal(decimal.RequireFromString("8.25")), "got %s", report.AvgOrder)
	assert.Equal(t, "Orders: 2 | Total sales: $16.50 | Avg order: $8.25", report.Summary)
}
