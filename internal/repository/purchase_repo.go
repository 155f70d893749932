package repository

import (
	"context"

	"stockdash/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	// FindByIDForUpdateTx takes a row lock on the purchase so concurrent
	// updates and deletes of the same record serialize on the database.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context) ([]model.Purchase, error)
	Recent(ctx context.Context, limit int) ([]model.Purchase, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	UpdateTx(tx *gorm.DB, p *model.Purchase) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Product").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).Preload("Product").
		Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Recent(ctx context.Context, limit int) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).Preload("Product").
		Order("created_at DESC").Limit(limit).Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *purchaseRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) UpdateTx(tx *gorm.DB, p *model.Purchase) error {
	res := tx.Save(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *purchaseRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.Purchase{}, id)
	if res.Error != nil {
		return res.Error
	}
	// A zero-row delete means the purchase vanished between reads; surfacing
	// it keeps the caller from applying a stock reversal for nothing.
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
