package sale

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-commission/internal/product"
	"go-commission/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query is the resolved form of ListSalesFilter. To is exclusive.
type Query struct {
	SellerID       *uuid.UUID
	ProductID      *uuid.UUID
	CustomerName   string
	SaleStatus     SaleStatus
	PaymentStatus  PaymentStatus
	ContractStatus ContractStatus
	From           *time.Time
	To             *time.Time
}

//go:generate mockgen -source=sale_repo.go -destination=mock/sale_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, q Query) ([]Sale, error)
	Update(ctx context.Context, s *Sale) error
	UpdateCommission(ctx context.Context, id uuid.UUID, amount decimal.Decimal, source string) error
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)

	CreateAttachment(ctx context.Context, a *Attachment) error
	FindAttachment(ctx context.Context, saleID, attachmentID uuid.UUID) (*Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
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

func (r *repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Customer").
		Preload("Product").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func (r *repository) Create(ctx context.Context, s *Sale) error {
	return r.db.WithContext(ctx).
		Omit("Seller", "Customer", "Product", "Attachments").
		Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Sale, error) {
	var s Sale
	if err := r.preloaded(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByIDForUpdate locks the sale row for the rest of the transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error) {
	var s Sale
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindAll(ctx context.Context, q Query) ([]Sale, error) {
	db := r.preloaded(ctx).Model(&Sale{})

	if q.SellerID != nil {
		db = db.Where("sales.seller_id = ?", *q.SellerID)
	}
	if q.ProductID != nil {
		db = db.Where("sales.product_id = ?", *q.ProductID)
	}
	if name := strings.TrimSpace(q.CustomerName); name != "" {
		db = db.Joins("JOIN customers ON customers.id = sales.customer_id").
			Where("LOWER(customers.full_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if q.SaleStatus != "" {
		db = db.Where("sales.sale_status = ?", q.SaleStatus)
	}
	if q.PaymentStatus != "" {
		db = db.Where("sales.payment_status = ?", q.PaymentStatus)
	}
	if q.ContractStatus != "" {
		db = db.Where("sales.contract_status = ?", q.ContractStatus)
	}
	if q.From != nil {
		db = db.Where("sales.sold_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("sales.sold_at < ?", *q.To)
	}

	var sales []Sale
	err := db.Order("sales.sold_at DESC, sales.created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *repository) Update(ctx context.Context, s *Sale) error {
	return r.db.WithContext(ctx).
		Model(&Sale{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"customer_id":       s.CustomerID,
			"product_id":        s.ProductID,
			"sold_at":           s.SoldAt,
			"total_fee":         s.TotalFee,
			"down_payment":      s.DownPayment,
			"installment_count": s.InstallmentCount,
			"installment_value": s.InstallmentValue,
			"success_fee":       s.SuccessFee,
			"contribution":      s.Contribution,
			"payment_method":    s.PaymentMethod,
			"notes":             s.Notes,
			"sale_status":       s.SaleStatus,
			"payment_status":    s.PaymentStatus,
			"contract_status":   s.ContractStatus,
			"manual_commission": s.ManualCommission,
			"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) UpdateCommission(ctx context.Context, id uuid.UUID, amount decimal.Decimal, source string) error {
	return r.db.WithContext(ctx).
		Model(&Sale{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"final_commission":  amount,
			"commission_source": source,
			"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&product.Product{}).
		Where("id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateAttachment(ctx context.Context, a *Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAttachment(ctx context.Context, saleID, attachmentID uuid.UUID) (*Attachment, error) {
	var a Attachment
	err := r.db.WithContext(ctx).
		Where("id = ? AND sale_id = ?", attachmentID, saleID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Attachment{}, "id = ?", attachmentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
