package lot

import (
	"time"

	"go-commission/internal/sale"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/money"
)

// CloseRequest selects the approved sales to batch. Dates are inclusive
// calendar days in the business time zone.
type CloseRequest struct {
	StartDate string `json:"start_date" form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required,datetime=2006-01-02"`
	SellerID  string `json:"seller_id" form:"seller_id" binding:"omitempty,uuid"`
}

type ListLotsFilter struct {
	SellerID  string `form:"seller_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending partially_paid fully_paid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// RecordPaymentRequest is read from a multipart form; the optional proof
// file travels next to it.
type RecordPaymentRequest struct {
	Amount      string `form:"amount" binding:"required"`
	Description string `form:"description" binding:"omitempty,max=255"`
}

type SellerTotal struct {
	SellerID   string `json:"seller_id"`
	SellerName string `json:"seller_name"`
	Sales      int    `json:"sales"`
	Total      string `json:"total"`
}

type PreviewResponse struct {
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Sellers    []SellerTotal `json:"sellers"`
	GrandTotal string        `json:"grand_total"`
}

type SellerFailure struct {
	SellerID   string `json:"seller_id"`
	SellerName string `json:"seller_name"`
	Reason     string `json:"reason"`
}

type CloseResult struct {
	Created []LotResponse   `json:"created"`
	Skipped []SellerTotal   `json:"skipped"`
	Failed  []SellerFailure `json:"failed"`
}

type LotResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	SellerID     string `json:"seller_id"`
	SellerName   string `json:"seller_name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	ClosedBy     string `json:"closed_by"`
	ClosedByName string `json:"closed_by_name,omitempty"`
	ClosedAt     string `json:"closed_at"`
	Status       string `json:"status"`
	TotalDue     string `json:"total_due"`
	TotalPaid    string `json:"total_paid"`
	Outstanding  string `json:"outstanding"`
}

type LotSaleResponse struct {
	ID               string  `json:"id"`
	SoldAt           string  `json:"sold_at"`
	CustomerName     string  `json:"customer_name,omitempty"`
	ProductName      string  `json:"product_name,omitempty"`
	TotalFee         string  `json:"total_fee"`
	FinalCommission  string  `json:"final_commission"`
	CommissionSource *string `json:"commission_source"`
}

type PaymentResponse struct {
	ID           string `json:"id"`
	LotID        string `json:"lot_id"`
	Amount       string `json:"amount"`
	PaidAt       string `json:"paid_at"`
	Description  string `json:"description,omitempty"`
	ProofName    string `json:"proof_name,omitempty"`
	ProofURL     string `json:"proof_url,omitempty"`
	RecordedBy   string `json:"recorded_by"`
	RecorderName string `json:"recorder_name,omitempty"`
	TotalPaid    string `json:"total_paid,omitempty"`
	Status       string `json:"status,omitempty"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	UploadedBy  string `json:"uploaded_by"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type LotDetailResponse struct {
	LotResponse
	Sales       []LotSaleResponse    `json:"sales"`
	Payments    []PaymentResponse    `json:"payments"`
	Attachments []AttachmentResponse `json:"attachments"`
}

// DashboardResponse sums what is still to be batched and what the visible
// lots owe.
type DashboardResponse struct {
	Unbatched      []SellerTotal  `json:"unbatched"`
	UnbatchedTotal string         `json:"unbatched_total"`
	Lots           int            `json:"lots"`
	ByStatus       map[string]int `json:"by_status"`
	TotalDue       string         `json:"total_due"`
	TotalPaid      string         `json:"total_paid"`
	Outstanding    string         `json:"outstanding"`
}

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func mapToResponse(l Lot) LotResponse {
	resp := LotResponse{
		ID:          l.ID.String(),
		Code:        l.Code,
		SellerID:    l.SellerID.String(),
		StartDate:   l.StartDate.Format(dateutil.Layout),
		EndDate:     l.EndDate.Format(dateutil.Layout),
		ClosedBy:    l.ClosedBy.String(),
		ClosedAt:    l.ClosedAt.Format(time.RFC3339),
		Status:      string(l.Status),
		TotalDue:    money.Format(l.TotalDue),
		TotalPaid:   money.Format(l.TotalPaid),
		Outstanding: money.Format(l.Outstanding()),
	}
	if l.Seller != nil {
		resp.SellerName = l.Seller.Name
	}
	if l.Closer != nil {
		resp.ClosedByName = l.Closer.Name
	}
	return resp
}

func mapSale(s sale.Sale) LotSaleResponse {
	resp := LotSaleResponse{
		ID:               s.ID.String(),
		SoldAt:           s.SoldAt.Format(time.RFC3339),
		TotalFee:         money.Format(s.TotalFee),
		FinalCommission:  money.Format(money.Zero),
		CommissionSource: s.CommissionSource,
	}
	if s.FinalCommission != nil {
		resp.FinalCommission = money.Format(*s.FinalCommission)
	}
	if s.Customer != nil {
		resp.CustomerName = s.Customer.FullName
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
	}
	return resp
}

func mapPayment(p PaymentTransaction, url string) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID.String(),
		LotID:       p.LotID.String(),
		Amount:      money.Format(p.Amount),
		PaidAt:      p.PaidAt.Format(time.RFC3339),
		Description: p.Description,
		ProofName:   p.ProofName,
		ProofURL:    url,
		RecordedBy:  p.RecordedBy.String(),
	}
	if p.Recorder != nil {
		resp.RecorderName = p.Recorder.Name
	}
	return resp
}

func mapAttachment(a Attachment, url string) AttachmentResponse {
	resp := AttachmentResponse{
		ID:          a.ID.String(),
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		Description: a.Description,
		URL:         url,
		UploadedBy:  a.UploadedBy.String(),
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
