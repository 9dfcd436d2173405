package sale

import (
	"time"

	"go-commission/internal/customer"
	"go-commission/internal/shared/money"

	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	Customer         customer.CustomerInput `json:"customer" binding:"required"`
	ProductID        string                 `json:"product_id" binding:"required,uuid"`
	SoldAt           string                 `json:"sold_at" binding:"omitempty,datetime=2006-01-02"`
	DownPayment      decimal.Decimal        `json:"down_payment"`
	InstallmentCount int                    `json:"installment_count"`
	InstallmentValue decimal.Decimal        `json:"installment_value"`
	SuccessFee       decimal.Decimal        `json:"success_fee"`
	Contribution     decimal.Decimal        `json:"contribution"`
	PaymentMethod    string                 `json:"payment_method" binding:"omitempty,max=50"`
	Notes            string                 `json:"notes"`
	SaleStatus       string                 `json:"sale_status" binding:"omitempty,oneof=started negotiating awaiting_payment in_contract completed lost"`
}

// UpdateSaleRequest replaces the negotiated data of a sale. ManualCommission
// is only honoured for managers; ClearManualCommission removes an override.
type UpdateSaleRequest struct {
	ProductID             string           `json:"product_id" binding:"required,uuid"`
	SoldAt                string           `json:"sold_at" binding:"omitempty,datetime=2006-01-02"`
	DownPayment           decimal.Decimal  `json:"down_payment"`
	InstallmentCount      int              `json:"installment_count"`
	InstallmentValue      decimal.Decimal  `json:"installment_value"`
	SuccessFee            decimal.Decimal  `json:"success_fee"`
	Contribution          decimal.Decimal  `json:"contribution"`
	PaymentMethod         string           `json:"payment_method" binding:"omitempty,max=50"`
	Notes                 string           `json:"notes"`
	ManualCommission      *decimal.Decimal `json:"manual_commission"`
	ClearManualCommission bool             `json:"clear_manual_commission"`
}

type UpdateStatusRequest struct {
	SaleStatus     *string `json:"sale_status" binding:"omitempty,oneof=started negotiating awaiting_payment in_contract completed lost"`
	PaymentStatus  *string `json:"payment_status" binding:"omitempty,oneof=pending awaiting_validation approved rejected"`
	ContractStatus *string `json:"contract_status" binding:"omitempty,oneof=not_generated generated signed finalized"`
}

type ListSalesFilter struct {
	SellerID       string `form:"seller_id" binding:"omitempty,uuid"`
	ProductID      string `form:"product_id" binding:"omitempty,uuid"`
	CustomerName   string `form:"customer"`
	SaleStatus     string `form:"sale_status" binding:"omitempty,oneof=started negotiating awaiting_payment in_contract completed lost"`
	PaymentStatus  string `form:"payment_status" binding:"omitempty,oneof=pending awaiting_validation approved rejected"`
	ContractStatus string `form:"contract_status" binding:"omitempty,oneof=not_generated generated signed finalized"`
	StartDate      string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate        string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type Permissions struct {
	EditData          bool `json:"edit_data"`
	EditCommission    bool `json:"edit_commission"`
	SetSaleStatus     bool `json:"set_sale_status"`
	SetPaymentStatus  bool `json:"set_payment_status"`
	SetContractStatus bool `json:"set_contract_status"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	URL         string `json:"url,omitempty"`
	UploadedBy  string `json:"uploaded_by"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type SaleResponse struct {
	ID               string                     `json:"id"`
	SellerID         string                     `json:"seller_id"`
	SellerName       string                     `json:"seller_name,omitempty"`
	Customer         *customer.CustomerResponse `json:"customer,omitempty"`
	CustomerID       string                     `json:"customer_id"`
	ProductID        string                     `json:"product_id"`
	ProductName      string                     `json:"product_name,omitempty"`
	SoldAt           string                     `json:"sold_at"`
	TotalFee         string                     `json:"total_fee"`
	DownPayment      string                     `json:"down_payment"`
	InstallmentCount int                        `json:"installment_count"`
	InstallmentValue string                     `json:"installment_value"`
	SuccessFee       string                     `json:"success_fee"`
	Contribution     string                     `json:"contribution"`
	PaymentMethod    string                     `json:"payment_method,omitempty"`
	Notes            string                     `json:"notes,omitempty"`
	SaleStatus       string                     `json:"sale_status"`
	PaymentStatus    string                     `json:"payment_status"`
	ContractStatus   string                     `json:"contract_status"`
	ManualCommission *string                    `json:"manual_commission"`
	FinalCommission  *string                    `json:"final_commission"`
	CommissionSource *string                    `json:"commission_source"`
	LotID            *string                    `json:"lot_id"`
	Attachments      []AttachmentResponse       `json:"attachments,omitempty"`
	Permissions      *Permissions               `json:"permissions,omitempty"`
	CreatedAt        string                     `json:"created_at,omitempty"`
}

type Breakdown struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	TotalFee string `json:"total_fee"`
}

// SummaryResponse aggregates the filtered sales for the dashboard.
type SummaryResponse struct {
	Count         int         `json:"count"`
	TotalFee      string      `json:"total_fee"`
	AverageTicket string      `json:"average_ticket"`
	BySeller      []Breakdown `json:"by_seller"`
	ByProduct     []Breakdown `json:"by_product"`
	ByMonth       []Breakdown `json:"by_month"`
}

type CommissionBreakdown struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
}

// CommissionSummaryResponse reports final commissions of the approved
// sales matching a list filter.
type CommissionSummaryResponse struct {
	Count     int                   `json:"count"`
	Total     string                `json:"total"`
	Average   string                `json:"average"`
	BySeller  []CommissionBreakdown `json:"by_seller"`
	ByProduct []CommissionBreakdown `json:"by_product"`
	ByMonth   []CommissionBreakdown `json:"by_month"`
}

// ExportFile is a rendered report ready to be streamed.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func formatPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money.Format(*d)
	return &s
}

func mapToResponse(s Sale) SaleResponse {
	resp := SaleResponse{
		ID:               s.ID.String(),
		SellerID:         s.SellerID.String(),
		CustomerID:       s.CustomerID.String(),
		ProductID:        s.ProductID.String(),
		SoldAt:           s.SoldAt.Format(time.RFC3339),
		TotalFee:         money.Format(s.TotalFee),
		DownPayment:      money.Format(s.DownPayment),
		InstallmentCount: s.InstallmentCount,
		InstallmentValue: money.Format(s.InstallmentValue),
		SuccessFee:       money.Format(s.SuccessFee),
		Contribution:     money.Format(s.Contribution),
		PaymentMethod:    s.PaymentMethod,
		Notes:            s.Notes,
		SaleStatus:       string(s.SaleStatus),
		PaymentStatus:    string(s.PaymentStatus),
		ContractStatus:   string(s.ContractStatus),
		ManualCommission: formatPtr(s.ManualCommission),
		FinalCommission:  formatPtr(s.FinalCommission),
		CommissionSource: s.CommissionSource,
	}
	if s.LotID != nil {
		id := s.LotID.String()
		resp.LotID = &id
	}
	if s.Seller != nil {
		resp.SellerName = s.Seller.Name
	}
	if s.Customer != nil {
		c := customer.MapToResponse(*s.Customer)
		resp.Customer = &c
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
	}
	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapAttachment(a Attachment, url string) AttachmentResponse {
	resp := AttachmentResponse{
		ID:          a.ID.String(),
		Kind:        string(a.Kind),
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		URL:         url,
		UploadedBy:  a.UploadedBy.String(),
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
