package sale

import (
	"slices"
	"time"

	"go-commission/internal/customer"
	"go-commission/internal/product"
	"go-commission/internal/shared/money"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleStarted         SaleStatus = "started"
	SaleNegotiating     SaleStatus = "negotiating"
	SaleAwaitingPayment SaleStatus = "awaiting_payment"
	SaleInContract      SaleStatus = "in_contract"
	SaleCompleted       SaleStatus = "completed"
	SaleLost            SaleStatus = "lost"
)

var saleStatuses = []SaleStatus{SaleStarted, SaleNegotiating, SaleAwaitingPayment, SaleInContract, SaleCompleted, SaleLost}

func (s SaleStatus) Valid() bool { return slices.Contains(saleStatuses, s) }

type PaymentStatus string

const (
	PaymentPending            PaymentStatus = "pending"
	PaymentAwaitingValidation PaymentStatus = "awaiting_validation"
	PaymentApproved           PaymentStatus = "approved"
	PaymentRejected           PaymentStatus = "rejected"
)

var paymentStatuses = []PaymentStatus{PaymentPending, PaymentAwaitingValidation, PaymentApproved, PaymentRejected}

func (s PaymentStatus) Valid() bool { return slices.Contains(paymentStatuses, s) }

type ContractStatus string

const (
	ContractNotGenerated ContractStatus = "not_generated"
	ContractGenerated    ContractStatus = "generated"
	ContractSigned       ContractStatus = "signed"
	ContractFinalized    ContractStatus = "finalized"
)

var contractStatuses = []ContractStatus{ContractNotGenerated, ContractGenerated, ContractSigned, ContractFinalized}

func (s ContractStatus) Valid() bool { return slices.Contains(contractStatuses, s) }

type AttachmentKind string

const (
	AttachmentReceipt  AttachmentKind = "receipt"
	AttachmentContract AttachmentKind = "contract"
	AttachmentInvoice  AttachmentKind = "invoice"
)

func (k AttachmentKind) Valid() bool {
	return k == AttachmentReceipt || k == AttachmentContract || k == AttachmentInvoice
}

type Sale struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SellerID         uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	CustomerID       uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	SoldAt           time.Time       `gorm:"column:sold_at;not null;index"`
	TotalFee         decimal.Decimal `gorm:"column:total_fee;type:decimal(18,2);not null"`
	DownPayment      decimal.Decimal `gorm:"column:down_payment;type:decimal(18,2);not null;default:0"`
	InstallmentCount int             `gorm:"column:installment_count;not null;default:0"`
	InstallmentValue decimal.Decimal `gorm:"column:installment_value;type:decimal(18,2);not null;default:0"`
	SuccessFee       decimal.Decimal `gorm:"column:success_fee;type:decimal(18,2);not null;default:0"`
	Contribution     decimal.Decimal `gorm:"column:contribution;type:decimal(18,2);not null;default:0"`
	PaymentMethod    string          `gorm:"column:payment_method;type:varchar(50)"`
	Notes            string          `gorm:"column:notes;type:text"`
	SaleStatus       SaleStatus      `gorm:"column:sale_status;type:varchar(30);not null;index"`
	PaymentStatus    PaymentStatus   `gorm:"column:payment_status;type:varchar(30);not null;index"`
	ContractStatus   ContractStatus  `gorm:"column:contract_status;type:varchar(30);not null"`

	ManualCommission *decimal.Decimal `gorm:"column:manual_commission;type:decimal(18,2)"`
	FinalCommission  *decimal.Decimal `gorm:"column:final_commission;type:decimal(18,2)"`
	CommissionSource *string          `gorm:"column:commission_source;type:varchar(20)"`
	LotID            *uuid.UUID       `gorm:"column:lot_id;type:uuid;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Seller      *user.User         `gorm:"foreignKey:SellerID"`
	Customer    *customer.Customer `gorm:"foreignKey:CustomerID"`
	Product     *product.Product   `gorm:"foreignKey:ProductID"`
	Attachments []Attachment       `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

type Attachment struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	SaleID      uuid.UUID      `gorm:"column:sale_id;type:uuid;not null;index"`
	Kind        AttachmentKind `gorm:"column:kind;type:varchar(20);not null"`
	FileKey     string         `gorm:"column:file_key;type:varchar(500);not null"`
	FileName    string         `gorm:"column:file_name;type:varchar(255)"`
	ContentType string         `gorm:"column:content_type;type:varchar(100)"`
	Size        int64          `gorm:"column:size"`
	UploadedBy  uuid.UUID      `gorm:"column:uploaded_by;type:uuid"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "sale_attachments"
}

// TotalFee is the negotiated fee: down payment, installments and success
// fee. The contribution is not part of it.
func TotalFee(downPayment decimal.Decimal, installmentCount int, installmentValue, successFee decimal.Decimal) decimal.Decimal {
	installments := installmentValue.Mul(decimal.NewFromInt(int64(installmentCount)))
	return money.Round(money.Sum(downPayment, installments, successFee))
}

func (s *Sale) recomputeTotal() {
	s.TotalFee = TotalFee(s.DownPayment, s.InstallmentCount, s.InstallmentValue, s.SuccessFee)
}
