package commission

import (
	"time"

	"go-commission/internal/product"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleSource records which rule produced a sale's final commission.
type RuleSource string

const (
	SourceManual    RuleSource = "manual"
	SourceException RuleSource = "exception"
	SourceProduct   RuleSource = "product"
)

// Exception overrides a product's default commission for one seller.
type Exception struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	SellerID  uuid.UUID              `gorm:"column:seller_id;type:uuid;not null;uniqueIndex:uq_commission_exceptions_seller_product"`
	ProductID uuid.UUID              `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_commission_exceptions_seller_product"`
	Kind      product.CommissionKind `gorm:"column:kind;type:varchar(1);not null"`
	Value     decimal.Decimal        `gorm:"column:value;type:decimal(18,2);not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	Seller  *user.User       `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Product *product.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Exception) TableName() string {
	return "commission_exceptions"
}

func (e Exception) Rule() Rule {
	return Rule{Kind: e.Kind, Value: e.Value}
}
