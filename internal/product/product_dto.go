package product

import (
	"time"

	"go-commission/internal/shared/money"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name                      string          `json:"name" binding:"required,max=200"`
	Description               string          `json:"description"`
	Price                     decimal.Decimal `json:"price"`
	CommissionKind            string          `json:"commission_kind" binding:"required,oneof=P F"`
	CommissionValue           decimal.Decimal `json:"commission_value"`
	SuggestedDownPayment      decimal.Decimal `json:"suggested_down_payment"`
	SuggestedInstallmentCount int             `json:"suggested_installment_count" binding:"gte=0"`
	SuggestedInstallmentValue decimal.Decimal `json:"suggested_installment_value"`
	SuggestedSuccessFee       decimal.Decimal `json:"suggested_success_fee"`
	SuggestedContribution     decimal.Decimal `json:"suggested_contribution"`
}

type UpdateProductRequest struct {
	CreateProductRequest
	IsActive *bool `json:"is_active"`
}

type ListProductsFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
}

type ProductResponse struct {
	ID                        string `json:"id"`
	Name                      string `json:"name"`
	Description               string `json:"description"`
	Price                     string `json:"price"`
	CommissionKind            string `json:"commission_kind"`
	CommissionValue           string `json:"commission_value"`
	SuggestedDownPayment      string `json:"suggested_down_payment"`
	SuggestedInstallmentCount int    `json:"suggested_installment_count"`
	SuggestedInstallmentValue string `json:"suggested_installment_value"`
	SuggestedSuccessFee       string `json:"suggested_success_fee"`
	SuggestedContribution     string `json:"suggested_contribution"`
	IsActive                  bool   `json:"is_active"`
	CreatedAt                 string `json:"created_at"`
	UpdatedAt                 string `json:"updated_at"`
}

type ProductOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SuggestionResponse pre-fills the sale form for a product.
type SuggestionResponse struct {
	ProductID         string `json:"product_id"`
	DownPayment       string `json:"down_payment"`
	InstallmentCount  int    `json:"installment_count"`
	InstallmentValue  string `json:"installment_value"`
	SuccessFee        string `json:"success_fee"`
	Contribution      string `json:"contribution"`
	TotalFee          string `json:"total_fee"`
	CommissionKind    string `json:"commission_kind"`
	CommissionValue   string `json:"commission_value"`
	DefaultCommission string `json:"default_commission"`
}

func mapToResponse(p Product) ProductResponse {
	resp := ProductResponse{
		ID:                        p.ID.String(),
		Name:                      p.Name,
		Description:               p.Description,
		Price:                     money.Format(p.Price),
		CommissionKind:            string(p.CommissionKind),
		CommissionValue:           money.Format(p.CommissionValue),
		SuggestedDownPayment:      money.Format(p.SuggestedDownPayment),
		SuggestedInstallmentCount: p.SuggestedInstallmentCount,
		SuggestedInstallmentValue: money.Format(p.SuggestedInstallmentValue),
		SuggestedSuccessFee:       money.Format(p.SuggestedSuccessFee),
		SuggestedContribution:     money.Format(p.SuggestedContribution),
		IsActive:                  p.IsActive,
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(products []Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = mapToResponse(p)
	}
	return res
}
