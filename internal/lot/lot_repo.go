package lot

import (
	"context"
	"database/sql"
	"time"

	"go-commission/internal/sale"
	"go-commission/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EligibleQuery selects approved sales not yet in a lot. To is exclusive.
type EligibleQuery struct {
	SellerID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// Query filters lots by seller, status and closing time. To is exclusive.
type Query struct {
	SellerID *uuid.UUID
	Status   Status
	From     *time.Time
	To       *time.Time
}

//go:generate mockgen -source=lot_repo.go -destination=mock/lot_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindEligibleSales(ctx context.Context, q EligibleQuery) ([]sale.Sale, error)
	LockEligibleSales(ctx context.Context, q EligibleQuery) ([]sale.Sale, error)
	AssignSales(ctx context.Context, lotID uuid.UUID, saleIDs []uuid.UUID) (int64, error)
	ReleaseSales(ctx context.Context, lotID uuid.UUID) (int64, error)
	FindSales(ctx context.Context, lotID uuid.UUID) ([]sale.Sale, error)

	Create(ctx context.Context, l *Lot) error
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindAll(ctx context.Context, q Query) ([]Lot, error)
	UpdateTotals(ctx context.Context, id uuid.UUID, totalPaid decimal.Decimal, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreatePayment(ctx context.Context, p *PaymentTransaction) error
	SumPayments(ctx context.Context, lotID uuid.UUID) (decimal.Decimal, error)
	DeletePayments(ctx context.Context, lotID uuid.UUID) error

	CreateAttachment(ctx context.Context, a *Attachment) error
	DeleteAttachments(ctx context.Context, lotID uuid.UUID) error
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

func (r *repository) eligible(ctx context.Context, q EligibleQuery) *gorm.DB {
	db := r.db.WithContext(ctx).
		Model(&sale.Sale{}).
		Where("payment_status = ? AND lot_id IS NULL", sale.PaymentApproved)
	if q.SellerID != nil {
		db = db.Where("seller_id = ?", *q.SellerID)
	}
	if q.From != nil {
		db = db.Where("sold_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("sold_at < ?", *q.To)
	}
	return db.Order("seller_id ASC, sold_at ASC")
}

func (r *repository) FindEligibleSales(ctx context.Context, q EligibleQuery) ([]sale.Sale, error) {
	var sales []sale.Sale
	err := r.eligible(ctx, q).Preload("Seller").Find(&sales).Error
	return sales, err
}

// LockEligibleSales locks the matching sale rows for the rest of the
// transaction.
func (r *repository) LockEligibleSales(ctx context.Context, q EligibleQuery) ([]sale.Sale, error) {
	var sales []sale.Sale
	err := r.eligible(ctx, q).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&sales).Error
	return sales, err
}

// AssignSales moves the given sales into the lot, skipping any that some
// other lot claimed first. The caller compares the count.
func (r *repository) AssignSales(ctx context.Context, lotID uuid.UUID, saleIDs []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&sale.Sale{}).
		Where("id IN ? AND lot_id IS NULL", saleIDs).
		Updates(map[string]any{
			"lot_id":     lotID,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ReleaseSales(ctx context.Context, lotID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&sale.Sale{}).
		Where("lot_id = ?", lotID).
		Updates(map[string]any{
			"lot_id":     nil,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindSales(ctx context.Context, lotID uuid.UUID) ([]sale.Sale, error) {
	var sales []sale.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Where("lot_id = ?", lotID).
		Order("sold_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *repository) Create(ctx context.Context, l *Lot) error {
	return r.db.WithContext(ctx).
		Omit("Seller", "Closer", "Payments", "Attachments").
		Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Lot, error) {
	var l Lot
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Closer").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC")
		}).
		Preload("Payments.Recorder").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDForUpdate locks the lot row for the rest of the transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Lot, error) {
	var l Lot
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, q Query) ([]Lot, error) {
	db := r.db.WithContext(ctx).Preload("Seller").Preload("Closer")
	if q.SellerID != nil {
		db = db.Where("seller_id = ?", *q.SellerID)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.From != nil {
		db = db.Where("closed_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("closed_at < ?", *q.To)
	}

	var lots []Lot
	err := db.Order("closed_at DESC, code DESC").Find(&lots).Error
	return lots, err
}

func (r *repository) UpdateTotals(ctx context.Context, id uuid.UUID, totalPaid decimal.Decimal, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Lot{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_paid": totalPaid,
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Lot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreatePayment(ctx context.Context, p *PaymentTransaction) error {
	return r.db.WithContext(ctx).Omit("Recorder").Create(p).Error
}

func (r *repository) SumPayments(ctx context.Context, lotID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&PaymentTransaction{}).
		Select("SUM(amount)").
		Where("lot_id = ?", lotID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) DeletePayments(ctx context.Context, lotID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&PaymentTransaction{}, "lot_id = ?", lotID).Error
}

func (r *repository) CreateAttachment(ctx context.Context, a *Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) DeleteAttachments(ctx context.Context, lotID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Attachment{}, "lot_id = ?", lotID).Error
}
