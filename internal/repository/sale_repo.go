package repository

import (
	"context"

	"stockdash/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// FindByIDForUpdateTx takes a row lock on the sale so concurrent updates
	// and deletes of the same record serialize on the database.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	Recent(ctx context.Context, limit int) ([]model.Sale, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Product").Preload("Customer").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Product").Preload("Customer").
		Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Recent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Product").Preload("Customer").
		Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *saleRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}

func (r *saleRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	return &s, err
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	res := tx.Save(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	// A zero-row delete means the sale vanished between reads; surfacing it
	// keeps the caller from applying a stock reversal for nothing.
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
