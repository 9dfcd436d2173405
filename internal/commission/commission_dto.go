package commission

import (
	"time"

	"go-commission/internal/shared/money"

	"github.com/shopspring/decimal"
)

type CreateExceptionRequest struct {
	SellerID  string          `json:"seller_id" binding:"required,uuid"`
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Kind      string          `json:"kind" binding:"required,oneof=P F p f"`
	Value     decimal.Decimal `json:"value"`
}

type UpdateExceptionRequest struct {
	Kind  string          `json:"kind" binding:"required,oneof=P F p f"`
	Value decimal.Decimal `json:"value"`
}

type ListExceptionsFilter struct {
	SellerID  string `form:"seller_id" binding:"omitempty,uuid"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
}

type ExceptionResponse struct {
	ID          string `json:"id"`
	SellerID    string `json:"seller_id"`
	SellerName  string `json:"seller_name,omitempty"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func mapToResponse(e Exception) ExceptionResponse {
	resp := ExceptionResponse{
		ID:        e.ID.String(),
		SellerID:  e.SellerID.String(),
		ProductID: e.ProductID.String(),
		Kind:      string(e.Kind),
		Value:     money.Format(e.Value),
	}
	if e.Seller != nil {
		resp.SellerName = e.Seller.Name
	}
	if e.Product != nil {
		resp.ProductName = e.Product.Name
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
