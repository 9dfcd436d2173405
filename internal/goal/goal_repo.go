package goal

import (
	"context"
	"database/sql"
	"time"

	"go-commission/internal/sale"
	"go-commission/internal/shared/database"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProgressQuery sums approved sales in [From, To) of a goal's population.
type ProgressQuery struct {
	SellerID *uuid.UUID
	TeamID   *uuid.UUID
	From     time.Time
	To       time.Time
}

//go:generate mockgen -source=goal_repo.go -destination=mock/goal_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, g *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindAll(ctx context.Context) ([]Goal, error)
	// FindActive returns goals whose date range contains day, given as a
	// UTC midnight like the stored dates.
	FindActive(ctx context.Context, day time.Time) ([]Goal, error)
	FindDuplicate(ctx context.Context, g *Goal) (bool, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error

	SellerExists(ctx context.Context, id uuid.UUID) (bool, error)
	TeamExists(ctx context.Context, id uuid.UUID) (bool, error)
	SumProgress(ctx context.Context, q ProgressQuery) (decimal.Decimal, error)
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
	return r.db.WithContext(ctx).Preload("Seller").Preload("Team")
}

func (r *repository) Create(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Omit("Seller", "Team").Create(g).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	var g Goal
	if err := r.preloaded(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	err := r.preloaded(ctx).
		Order("start_date DESC, end_date DESC").
		Find(&goals).Error
	return goals, err
}

func (r *repository) FindActive(ctx context.Context, day time.Time) ([]Goal, error) {
	var goals []Goal
	err := r.preloaded(ctx).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Order("start_date ASC, end_date ASC").
		Find(&goals).Error
	return goals, err
}

// FindDuplicate reports another goal with the same period and scope. NULL
// scopes are compared explicitly since unique indexes treat them as
// distinct.
func (r *repository) FindDuplicate(ctx context.Context, g *Goal) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Goal{}).
		Where("start_date = ? AND end_date = ?", g.StartDate, g.EndDate).
		Where("id <> ?", g.ID)
	if g.SellerID != nil {
		db = db.Where("seller_id = ?", *g.SellerID)
	} else {
		db = db.Where("seller_id IS NULL")
	}
	if g.TeamID != nil {
		db = db.Where("team_id = ?", *g.TeamID)
	} else {
		db = db.Where("team_id IS NULL")
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).
		Model(&Goal{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{
			"start_date": g.StartDate,
			"end_date":   g.EndDate,
			"target":     g.Target,
			"seller_id":  g.SellerID,
			"team_id":    g.TeamID,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Goal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SellerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) TeamExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.Team{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) SumProgress(ctx context.Context, q ProgressQuery) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx).
		Model(&sale.Sale{}).
		Select("SUM(down_payment)").
		Where("payment_status = ?", sale.PaymentApproved).
		Where("sold_at >= ? AND sold_at < ?", q.From, q.To)
	if q.SellerID != nil {
		db = db.Where("seller_id = ?", *q.SellerID)
	}
	if q.TeamID != nil {
		members := r.db.Model(&user.TeamMember{}).Select("user_id").Where("team_id = ?", *q.TeamID)
		db = db.Where("seller_id IN (?)", members)
	}

	var total decimal.NullDecimal
	if err := db.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
