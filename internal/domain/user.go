package domain

import (
	"strings"
	"sync"
	"time"
)

// User is a registered shopper: identity, credential, an append-only order
// history and a lazily created cart.
type User struct {
	Person
	Credential  Credential
	LastLoginAt *time.Time

	mu     sync.Mutex
	cart   *ShoppingCart
	orders []*Order
}

func NewUser(id, name, email, password string) (*User, error) {
	person, err := NewPerson(id, name, email)
	if err != nil {
		return nil, err
	}
	cred, err := NewCredential(password)
	if err != nil {
		return nil, err
	}
	return &User{Person: person, Credential: cred}, nil
}

func (u *User) SetPassword(newPassword string) error {
	return u.Credential.Set(newPassword)
}

func (u *User) VerifyPassword(password string) bool {
	return u.Credential.Verify(password)
}

// Login checks the normalized email and the password; the last-login stamp is
// only written on success.
func (u *User) Login(email, password string) bool {
	ok := u.Email == strings.ToLower(strings.TrimSpace(email)) && u.VerifyPassword(password)
	if ok {
		now := time.Now().UTC()
		u.LastLoginAt = &now
	}
	return ok
}

// Cart returns the user's cart, or nil if nothing was ever added.
func (u *User) Cart() *ShoppingCart {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cart
}

func (u *User) ensureCart() *ShoppingCart {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cart == nil {
		u.cart = NewShoppingCart(u.ID)
	}
	return u.cart
}

func (u *User) AddToCart(candy Candy, quantity int) error {
	if quantity <= 0 {
		return newValidationError("quantity", "must be positive")
	}
	return u.ensureCart().AddItem(candy, quantity)
}

// Checkout converts the cart into an order, appends it to the order history
// and empties the cart. A declined payment is recorded on the order, not
// returned as an error; only an absent or empty cart fails, and then nothing
// is mutated.
func (u *User) Checkout(pm PaymentMethod) (*Order, error) {
	u.mu.Lock()
	cart := u.cart
	u.mu.Unlock()
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	order := cart.CreateOrder(pm)
	u.mu.Lock()
	u.orders = append(u.orders, order)
	u.mu.Unlock()
	cart.Clear()
	return order, nil
}

// Orders returns a copy of the order history, oldest first.
func (u *User) Orders() []*Order {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*Order, len(u.orders))
	copy(out, u.orders)
	return out
}
