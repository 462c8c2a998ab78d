package repository

import (
	"context"
	"errors"
	"time"

	"candy-shop/internal/model"

	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	UpdateCredential(ctx context.Context, id, saltHex, digestHex string) error
	StampLastLogin(ctx context.Context, id string, at time.Time) error
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{
		db: db,
	}
}

func (r *accountRepoImpl) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (r *accountRepoImpl) FindByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

// UpdateCredential replaces salt and digest in one statement so no partial
// update is ever visible.
func (r *accountRepoImpl) UpdateCredential(ctx context.Context, id, saltHex, digestHex string) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_salt":   saltHex,
			"password_digest": digestHex,
			"updated_at":      time.Now(),
		}).Error
}

func (r *accountRepoImpl) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
