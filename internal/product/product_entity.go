package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionKind selects how a commission value is applied to a sale's
// total fee.
type CommissionKind string

const (
	KindPercentage CommissionKind = "P"
	KindFixed      CommissionKind = "F"
)

func (k CommissionKind) Valid() bool {
	return k == KindPercentage || k == KindFixed
}

type Product struct {
	ID                        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name                      string          `gorm:"column:name;type:varchar(200);not null;uniqueIndex:uq_products_name"`
	Description               string          `gorm:"column:description;type:text"`
	Price                     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null;default:0"`
	CommissionKind            CommissionKind  `gorm:"column:commission_kind;type:varchar(1);not null;default:'P'"`
	CommissionValue           decimal.Decimal `gorm:"column:commission_value;type:decimal(18,2);not null;default:0"`
	SuggestedDownPayment      decimal.Decimal `gorm:"column:suggested_down_payment;type:decimal(18,2);not null;default:0"`
	SuggestedInstallmentCount int             `gorm:"column:suggested_installment_count;not null;default:0"`
	SuggestedInstallmentValue decimal.Decimal `gorm:"column:suggested_installment_value;type:decimal(18,2);not null;default:0"`
	SuggestedSuccessFee       decimal.Decimal `gorm:"column:suggested_success_fee;type:decimal(18,2);not null;default:0"`
	SuggestedContribution     decimal.Decimal `gorm:"column:suggested_contribution;type:decimal(18,2);not null;default:0"`
	IsActive                  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt                 time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                 time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// SuggestedTotalFee follows the sale total: down payment plus installments
// plus success fee. Contribution is not part of the fee.
func (p Product) SuggestedTotalFee() decimal.Decimal {
	installments := p.SuggestedInstallmentValue.Mul(decimal.NewFromInt(int64(p.SuggestedInstallmentCount)))
	return p.SuggestedDownPayment.Add(installments).Add(p.SuggestedSuccessFee)
}
