package product

import (
	"context"
	"database/sql"
	"strings"

	"go-commission/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=product_repo.go -destination=mock/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter ListProductsFilter) ([]Product, error)
	FindOptions(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListProductsFilter) ([]Product, error) {
	q := r.db.WithContext(ctx).Model(&Product{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var products []Product
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":                        p.Name,
			"description":                 p.Description,
			"price":                       p.Price,
			"commission_kind":             p.CommissionKind,
			"commission_value":            p.CommissionValue,
			"suggested_down_payment":      p.SuggestedDownPayment,
			"suggested_installment_count": p.SuggestedInstallmentCount,
			"suggested_installment_value": p.SuggestedInstallmentValue,
			"suggested_success_fee":       p.SuggestedSuccessFee,
			"suggested_contribution":      p.SuggestedContribution,
			"is_active":                   p.IsActive,
			"updated_at":                  gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
