package lot

import (
	"fmt"
	"time"

	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is derived from the lot's totals and never set directly.
type Status string

const (
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFullyPaid     Status = "fully_paid"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPartiallyPaid, StatusFullyPaid:
		return true
	}
	return false
}

func DeriveStatus(paid, due decimal.Decimal) Status {
	switch {
	case !paid.IsPositive():
		return StatusPending
	case paid.LessThan(due):
		return StatusPartiallyPaid
	default:
		return StatusFullyPaid
	}
}

// CodeScope is the counter scope lot codes are drawn from, keyed by year.
const CodeScope = "lot"

func FormatCode(year int, seq int64) string {
	return fmt.Sprintf("LOT-%d-%06d", year, seq)
}

type Lot struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Code      string          `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uq_commission_lots_code"`
	SellerID  uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	StartDate time.Time       `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time       `gorm:"column:end_date;type:date;not null"`
	ClosedBy  uuid.UUID       `gorm:"column:closed_by;type:uuid;not null"`
	ClosedAt  time.Time       `gorm:"column:closed_at;not null;index"`
	Status    Status          `gorm:"column:status;type:varchar(20);not null;default:'pending'"`
	TotalDue  decimal.Decimal `gorm:"column:total_due;type:decimal(18,2);not null"`
	TotalPaid decimal.Decimal `gorm:"column:total_paid;type:decimal(18,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Seller      *user.User           `gorm:"foreignKey:SellerID"`
	Closer      *user.User           `gorm:"foreignKey:ClosedBy"`
	Payments    []PaymentTransaction `gorm:"foreignKey:LotID"`
	Attachments []Attachment         `gorm:"foreignKey:LotID"`
}

func (Lot) TableName() string {
	return "commission_lots"
}

func (l *Lot) Outstanding() decimal.Decimal {
	return l.TotalDue.Sub(l.TotalPaid)
}

// PaymentTransaction is one transfer to the seller. The proof file is
// optional.
type PaymentTransaction struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	LotID            uuid.UUID       `gorm:"column:lot_id;type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null"`
	PaidAt           time.Time       `gorm:"column:paid_at;not null"`
	Description      string          `gorm:"column:description;type:varchar(255)"`
	ProofKey         *string         `gorm:"column:proof_key;type:varchar(500)"`
	ProofName        string          `gorm:"column:proof_name;type:varchar(255)"`
	ProofContentType string          `gorm:"column:proof_content_type;type:varchar(100)"`
	RecordedBy       uuid.UUID       `gorm:"column:recorded_by;type:uuid;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`

	Recorder *user.User `gorm:"foreignKey:RecordedBy"`
}

func (PaymentTransaction) TableName() string {
	return "commission_payments"
}

// Attachment holds seller invoice documents sent for a lot.
type Attachment struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	LotID       uuid.UUID `gorm:"column:lot_id;type:uuid;not null;index"`
	FileKey     string    `gorm:"column:file_key;type:varchar(500);not null"`
	FileName    string    `gorm:"column:file_name;type:varchar(255);not null"`
	ContentType string    `gorm:"column:content_type;type:varchar(100)"`
	Size        int64     `gorm:"column:size;not null;default:0"`
	Description string    `gorm:"column:description;type:varchar(255)"`
	UploadedBy  uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "commission_lot_attachments"
}
