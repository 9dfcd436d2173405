package counter

import (
	"context"
	"database/sql"
	"time"

	"go-commission/internal/shared/database"

	"gorm.io/gorm"
)

// Counter is a named monotonic sequence, e.g. scope "lot", key "2026".
type Counter struct {
	Scope     string `gorm:"type:varchar(50);primaryKey"`
	Key       string `gorm:"column:counter_key;type:varchar(50);primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (Counter) TableName() string {
	return "counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, scope string, key string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, scope string, key string) (int64, error) {
	var nextValue int64

	// single statement upsert so concurrent callers never receive the same value
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (scope, counter_key, last_value, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (scope, counter_key) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value
	`, scope, key).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
