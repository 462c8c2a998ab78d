package service

import (
	"context"
	"fmt"

	"candy-shop/internal/domain"
	"candy-shop/internal/dto"
	"candy-shop/internal/model"
	"candy-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShopService interface {
	ListCandies(ctx context.Context) ([]*dto.CandyResponse, error)
	AddToCart(ctx context.Context, userID, sku string, quantity int) error
	GetCart(ctx context.Context, userID string) (*dto.CartResponse, error)
	Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.OrderResponse, error)
	Refund(ctx context.Context, userID string, req *dto.RefundRequest) (*dto.RefundResponse, error)
	ListOrders(ctx context.Context, userID string) ([]*dto.OrderResponse, error)
	UpdateInventory(ctx context.Context, sku string, quantity int) error
}

type shopServiceImpl struct {
	db        *gorm.DB
	sessions  *SessionRegistry
	candyRepo repository.CandyRepository
	orderRepo repository.OrderRepository
	txnRepo   repository.TransactionRepository
}

func NewShopService(
	db *gorm.DB,
	sessions *SessionRegistry,
	candyRepo repository.CandyRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.TransactionRepository,
) ShopService {
	return &shopServiceImpl{
		db:        db,
		sessions:  sessions,
		candyRepo: candyRepo,
		orderRepo: orderRepo,
		txnRepo:   txnRepo,
	}
}

func (s *shopServiceImpl) ListCandies(ctx context.Context) ([]*dto.CandyResponse, error) {
	candies, err := s.candyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.CandyResponse, len(candies))
	for i, candy := range candies {
		out[i] = &dto.CandyResponse{
			SKU:      candy.SKU,
			Name:     candy.Name,
			Price:    candy.Price,
			Quantity: candy.Quantity,
		}
	}
	return out, nil
}

func (s *shopServiceImpl) AddToCart(ctx context.Context, userID, sku string, quantity int) error {
	user, ok := s.sessions.get(userID)
	if !ok {
		return ErrNoSession
	}

	candy, err := s.candyRepo.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}

	if quantity > 0 && quantity+cartQuantity(user, sku) > candy.Quantity {
		return insufficientStock(candy)
	}

	return user.AddToCart(toDomainCandy(candy), quantity)
}

func (s *shopServiceImpl) GetCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	user, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrNoSession
	}

	cart := user.Cart()
	if cart == nil {
		return &dto.CartResponse{Empty: true}, nil
	}

	return cartResponse(cart), nil
}

// Checkout runs the domain checkout (validate cart, snapshot into an order,
// charge the instrument, clear the cart) and persists the outcome: the order,
// its items, the instrument's transactions and the stock decrement all commit
// in one database transaction.
func (s *shopServiceImpl) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.OrderResponse, error) {
	user, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrNoSession
	}

	pm, err := buildInstrument(req.Method, req.CardNumber, req.HolderName, req.Email)
	if err != nil {
		return nil, err
	}

	// Re-check stock against the current lines before the domain checkout so
	// a shortfall surfaces while the cart is still intact, not after the cart
	// was cleared and the order appended to the history.
	if cart := user.Cart(); cart != nil {
		for _, line := range cart.Lines() {
			candy, err := s.candyRepo.FindBySKU(ctx, line.Candy.SKU)
			if err != nil {
				return nil, err
			}
			if line.Quantity > candy.Quantity {
				return nil, insufficientStock(candy)
			}
		}
	}

	order, err := user.Checkout(pm)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status := "FAILED"
		if order.Paid() {
			status = "PAID"
		}
		err := s.orderRepo.Create(ctx, tx, &model.Order{
			OrderID:     order.ID,
			AccountID:   userID,
			TotalAmount: order.Total,
			Status:      status,
			ReceiptID:   order.ReceiptID,
			CreatedAt:   order.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		items := make([]*model.OrderItem, len(order.Lines))
		for i, line := range order.Lines {
			items[i] = &model.OrderItem{
				OrderID:   order.ID,
				SKU:       line.Candy.SKU,
				Name:      line.Candy.Name,
				UnitPrice: line.Candy.Price,
				Quantity:  line.Quantity,
			}
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}

		for _, txn := range pm.Transactions() {
			err := s.txnRepo.Create(ctx, tx, &model.PaymentTransaction{
				OrderID:   order.ID,
				Method:    pm.Name(),
				Kind:      string(txn.Kind),
				Amount:    txn.Amount,
				ReceiptID: txn.ReceiptID,
			})
			if err != nil {
				return fmt.Errorf("store payment transaction in db: %w", err)
			}
		}

		if order.Paid() {
			for _, line := range order.Lines {
				if err := s.candyRepo.DecrementStock(ctx, tx, line.Candy.SKU, line.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orderResponse(order), nil
}

// Refund is deliberately not gated on the instrument's validity; it always
// records exactly one refund transaction.
func (s *shopServiceImpl) Refund(ctx context.Context, userID string, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	if _, ok := s.sessions.get(userID); !ok {
		return nil, ErrNoSession
	}

	pm, err := buildInstrument(req.Method, req.CardNumber, req.HolderName, req.Email)
	if err != nil {
		return nil, err
	}

	message := pm.Refund(req.Amount)
	txns := pm.Transactions()
	receipt := txns[len(txns)-1].ReceiptID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.txnRepo.Create(ctx, tx, &model.PaymentTransaction{
			OrderID:   req.OrderID,
			Method:    pm.Name(),
			Kind:      string(domain.TransactionRefund),
			Amount:    req.Amount,
			ReceiptID: receipt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("store refund transaction in db: %w", err)
	}

	return &dto.RefundResponse{Message: message, ReceiptID: receipt}, nil
}

func (s *shopServiceImpl) ListOrders(ctx context.Context, userID string) ([]*dto.OrderResponse, error) {
	orders, err := s.orderRepo.ListByAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.OrderResponse, len(orders))
	for i, order := range orders {
		outcome := domain.OutcomeFailed
		if order.Status == "PAID" {
			outcome = domain.OutcomeSucceeded
		}
		out[i] = &dto.OrderResponse{
			OrderID:   order.OrderID,
			Total:     order.TotalAmount,
			Outcome:   outcome.String(),
			ReceiptID: order.ReceiptID,
			CreatedAt: order.CreatedAt,
		}
	}
	return out, nil
}

// UpdateInventory is the staff-facing stock update; the non-negative guard
// lives on the domain item.
func (s *shopServiceImpl) UpdateInventory(ctx context.Context, sku string, quantity int) error {
	found, err := s.candyRepo.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}

	candy := toDomainCandy(found)
	if err := candy.SetQuantity(quantity); err != nil {
		return err
	}

	return s.candyRepo.SetQuantity(ctx, sku, candy.Quantity)
}

func buildInstrument(method, cardNumber, holderName, email string) (domain.PaymentMethod, error) {
	switch method {
	case "credit_card":
		return domain.NewCreditCard(cardNumber, holderName), nil
	case "paypal":
		return domain.NewPayPal(email), nil
	default:
		return nil, &domain.ValidationError{Field: "method", Reason: "unsupported payment method"}
	}
}

// cartQuantity reports how many units of sku are already in the user's cart.
func cartQuantity(user *domain.User, sku string) int {
	cart := user.Cart()
	if cart == nil {
		return 0
	}
	for _, line := range cart.Lines() {
		if line.Candy.SKU == sku {
			return line.Quantity
		}
	}
	return 0
}

func insufficientStock(candy *model.Candy) error {
	return &domain.ValidationError{
		Field:  "quantity",
		Reason: fmt.Sprintf("only %d of %s in stock", candy.Quantity, candy.SKU),
	}
}

func toDomainCandy(candy *model.Candy) domain.Candy {
	return domain.Candy{
		SKU:      candy.SKU,
		Name:     candy.Name,
		Price:    candy.Price,
		Quantity: candy.Quantity,
	}
}

func cartLineResponses(lines []domain.CartLine) []dto.CartLineResponse {
	out := make([]dto.CartLineResponse, len(lines))
	for i, line := range lines {
		out[i] = dto.CartLineResponse{
			SKU:       line.Candy.SKU,
			Name:      line.Candy.Name,
			UnitPrice: line.Candy.Price,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		}
	}
	return out
}

func cartResponse(cart *domain.ShoppingCart) *dto.CartResponse {
	lines := cart.Lines()
	resp := &dto.CartResponse{
		Lines: cartLineResponses(lines),
		Empty: cart.IsEmpty(),
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	resp.Total = total
	return resp
}

func orderResponse(order *domain.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		OrderID:   order.ID,
		Total:     order.Total,
		Outcome:   order.Outcome.String(),
		ReceiptID: order.ReceiptID,
		Lines:     cartLineResponses(order.Lines),
		CreatedAt: order.CreatedAt,
	}
}
