package customer

import (
	"context"
	"database/sql"
	"strings"

	"go-commission/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_repo.go -destination=mock/customer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByTaxID(ctx context.Context, taxID string) (*Customer, error)
	FindAll(ctx context.Context, filter ListCustomersFilter) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
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

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var c Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByTaxID(ctx context.Context, taxID string) (*Customer, error) {
	var c Customer
	if err := r.db.WithContext(ctx).First(&c, "tax_id = ?", taxID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListCustomersFilter) ([]Customer, error) {
	q := r.db.WithContext(ctx).Model(&Customer{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		if digits := NormalizeTaxID(s); digits != "" {
			q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR tax_id LIKE ?", like, like, "%"+digits+"%")
		} else {
			q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
	}

	var customers []Customer
	err := q.Order("full_name ASC").Find(&customers).Error
	return customers, err
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"full_name":          c.FullName,
			"email":              c.Email,
			"tax_id":             c.TaxID,
			"phone":              c.Phone,
			"zip_code":           c.ZipCode,
			"street":             c.Street,
			"number":             c.Number,
			"complement":         c.Complement,
			"district":           c.District,
			"city":               c.City,
			"state":              c.State,
			"responsible_name":   c.ResponsibleName,
			"responsible_tax_id": c.ResponsibleTaxID,
			"responsible_email":  c.ResponsibleEmail,
			"updated_at":         gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
