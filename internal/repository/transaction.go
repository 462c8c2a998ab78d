package repository

import (
	"context"

	"candy-shop/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, txn *model.PaymentTransaction) error
	ListByOrder(ctx context.Context, orderID string) ([]*model.PaymentTransaction, error)
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{
		db: db,
	}
}

func (r *transactionRepoImpl) Create(ctx context.Context, tx *gorm.DB, txn *model.PaymentTransaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepoImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.PaymentTransaction, error) {
	var txns []*model.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&txns).Error

	if err != nil {
		return nil, err
	}

	return txns, nil
}
