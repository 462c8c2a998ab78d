package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"candy-shop/internal/dto"
	"candy-shop/internal/model"
	"candy-shop/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	sessions *SessionRegistry
	users    UserService
	shop     ShopService
	reports  ReportService

	accountRepo repository.AccountRepository
	candyRepo   repository.CandyRepository
	orderRepo   repository.OrderRepository
	txnRepo     repository.TransactionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Account{},
		&model.Candy{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentTransaction{},
	))

	env := &testEnv{
		db:          db,
		sessions:    NewSessionRegistry(),
		accountRepo: repository.NewAccountRepository(db),
		candyRepo:   repository.NewCandyRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		txnRepo:     repository.NewTransactionRepository(db),
	}
	require.NoError(t, env.candyRepo.Seed(context.Background()))

	env.users = NewUserService(env.accountRepo, env.sessions, []byte("test-secret"), time.Hour)
	env.shop = NewShopService(db, env.sessions, env.candyRepo, env.orderRepo, env.txnRepo)
	env.reports = NewReportService(env.orderRepo)

	return env
}

// registerAndLogin creates an account and returns its id with an active session.
func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	account, err := e.users.Register(context.Background(), registerReq("Keanu", email, "sugar-rush"))
	require.NoError(t, err)

	_, err = e.users.Login(context.Background(), email, "sugar-rush")
	require.NoError(t, err)

	return account.ID
}

func registerReq(name, email, password string) *dto.RegisterRequest {
	return &dto.RegisterRequest{Name: name, Email: email, Password: password}
}
