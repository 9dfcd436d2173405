package customer

import (
	"strings"
	"time"
)

// CustomerInput is accepted both by the customer endpoints and embedded in
// the sale creation payload.
type CustomerInput struct {
	TaxID            string `json:"tax_id" binding:"required,max=18"`
	FullName         string `json:"full_name" binding:"required,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"omitempty,max=20"`
	ZipCode          string `json:"zip_code" binding:"omitempty,max=10"`
	Street           string `json:"street" binding:"omitempty,max=255"`
	Number           string `json:"number" binding:"omitempty,max=20"`
	Complement       string `json:"complement" binding:"omitempty,max=100"`
	District         string `json:"district" binding:"omitempty,max=100"`
	City             string `json:"city" binding:"omitempty,max=100"`
	State            string `json:"state" binding:"omitempty,len=2"`
	ResponsibleName  string `json:"responsible_name" binding:"omitempty,max=255"`
	ResponsibleTaxID string `json:"responsible_tax_id" binding:"omitempty,max=14"`
	ResponsibleEmail string `json:"responsible_email" binding:"omitempty,email"`
}

type ListCustomersFilter struct {
	Search string `form:"search"`
}

type CustomerResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	TaxID            string `json:"tax_id"`
	Phone            string `json:"phone"`
	ZipCode          string `json:"zip_code"`
	Street           string `json:"street"`
	Number           string `json:"number"`
	Complement       string `json:"complement"`
	District         string `json:"district"`
	City             string `json:"city"`
	State            string `json:"state"`
	ResponsibleName  string `json:"responsible_name"`
	ResponsibleTaxID string `json:"responsible_tax_id"`
	ResponsibleEmail string `json:"responsible_email"`
	CreatedAt        string `json:"created_at,omitempty"`
}

const (
	CheckFound    = "found"
	CheckNotFound = "not_found"
)

type CheckResponse struct {
	Status   string            `json:"status"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

func (in CustomerInput) applyTo(c *Customer) {
	c.TaxID = NormalizeTaxID(in.TaxID)
	c.FullName = strings.TrimSpace(in.FullName)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = strings.TrimSpace(in.Phone)
	c.ZipCode = NormalizeTaxID(in.ZipCode)
	c.Street = strings.TrimSpace(in.Street)
	c.Number = strings.TrimSpace(in.Number)
	c.Complement = strings.TrimSpace(in.Complement)
	c.District = strings.TrimSpace(in.District)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.ToUpper(strings.TrimSpace(in.State))
	c.ResponsibleName = strings.TrimSpace(in.ResponsibleName)
	c.ResponsibleTaxID = NormalizeTaxID(in.ResponsibleTaxID)
	c.ResponsibleEmail = strings.ToLower(strings.TrimSpace(in.ResponsibleEmail))
}

func MapToResponse(c Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:               c.ID.String(),
		FullName:         c.FullName,
		Email:            c.Email,
		TaxID:            c.TaxID,
		Phone:            c.Phone,
		ZipCode:          c.ZipCode,
		Street:           c.Street,
		Number:           c.Number,
		Complement:       c.Complement,
		District:         c.District,
		City:             c.City,
		State:            c.State,
		ResponsibleName:  c.ResponsibleName,
		ResponsibleTaxID: c.ResponsibleTaxID,
		ResponsibleEmail: c.ResponsibleEmail,
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
