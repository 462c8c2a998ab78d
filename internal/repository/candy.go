package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"candy-shop/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCandyNotFound = errors.New("candy not found")

type CandyRepository interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) ([]*model.Candy, error)
	FindBySKU(ctx context.Context, sku string) (*model.Candy, error)
	SetQuantity(ctx context.Context, sku string, quantity int) error
	DecrementStock(ctx context.Context, tx *gorm.DB, sku string, by int) error
}

type candyRepoImpl struct {
	db *gorm.DB
}

func NewCandyRepository(db *gorm.DB) CandyRepository {
	return &candyRepoImpl{
		db: db,
	}
}

func (r *candyRepoImpl) Seed(ctx context.Context) error {
	candies := []model.Candy{
		{SKU: "gummy_bears", Name: "Gummy Bears", Price: decimal.RequireFromString("2.50"), Quantity: 200},
		{SKU: "sour_worms", Name: "Sour Worms", Price: decimal.RequireFromString("3.25"), Quantity: 150},
		{SKU: "choc_fudge", Name: "Chocolate Fudge", Price: decimal.RequireFromString("4.75"), Quantity: 80},
		{SKU: "rock_candy", Name: "Rock Candy Stick", Price: decimal.RequireFromString("1.99"), Quantity: 300},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&candies).Error
}

func (r *candyRepoImpl) List(ctx context.Context) ([]*model.Candy, error) {
	var candies []*model.Candy
	err := r.db.WithContext(ctx).
		Order("sku").
		Find(&candies).Error

	if err != nil {
		return nil, err
	}

	return candies, nil
}

func (r *candyRepoImpl) FindBySKU(ctx context.Context, sku string) (*model.Candy, error) {
	var candy model.Candy
	err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&candy).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandyNotFound
		}
		return nil, err
	}

	return &candy, nil
}

func (r *candyRepoImpl) SetQuantity(ctx context.Context, sku string, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.Candy{}).
		Where("sku = ?", sku).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandyNotFound
	}

	return nil
}

func (r *candyRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, sku string, by int) error {
	result := tx.WithContext(ctx).Model(&model.Candy{}).
		Where("sku = ? AND quantity >= ?", sku, by).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", by),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for %s", sku)
	}

	return nil
}
