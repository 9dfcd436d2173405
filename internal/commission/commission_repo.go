package commission

import (
	"context"
	"database/sql"

	"go-commission/internal/product"
	"go-commission/internal/shared/database"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=commission_repo.go -destination=mock/commission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Exception) error
	FindByID(ctx context.Context, id uuid.UUID) (*Exception, error)
	FindAll(ctx context.Context, sellerID, productID *uuid.UUID) ([]Exception, error)
	FindBySellerProduct(ctx context.Context, sellerID, productID uuid.UUID) (*Exception, error)
	Update(ctx context.Context, e *Exception) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindProductRule(ctx context.Context, productID uuid.UUID) (Rule, error)
	SellerExists(ctx context.Context, sellerID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, e *Exception) error {
	return r.db.WithContext(ctx).Omit("Seller", "Product").Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Exception, error) {
	var e Exception
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Product").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context, sellerID, productID *uuid.UUID) ([]Exception, error) {
	q := r.db.WithContext(ctx).Preload("Seller").Preload("Product")
	if sellerID != nil {
		q = q.Where("seller_id = ?", *sellerID)
	}
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}

	var out []Exception
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindBySellerProduct(ctx context.Context, sellerID, productID uuid.UUID) (*Exception, error) {
	var e Exception
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Exception) error {
	return r.db.WithContext(ctx).
		Model(&Exception{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"kind":       e.Kind,
			"value":      e.Value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Exception{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindProductRule(ctx context.Context, productID uuid.UUID) (Rule, error) {
	var p product.Product
	err := r.db.WithContext(ctx).
		Select("id", "commission_kind", "commission_value").
		First(&p, "id = ?", productID).Error
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kind: p.CommissionKind, Value: p.CommissionValue}, nil
}

func (r *repository) SellerExists(ctx context.Context, sellerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", sellerID).
		Count(&count).Error
	return count > 0, err
}
