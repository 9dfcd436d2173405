package goal

import (
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/money"

	"github.com/shopspring/decimal"
)

// GoalRequest creates or replaces a goal. Leave both seller and team empty
// for a company goal.
type GoalRequest struct {
	StartDate string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" binding:"required,datetime=2006-01-02"`
	Target    decimal.Decimal `json:"target"`
	SellerID  string          `json:"seller_id" binding:"omitempty,uuid"`
	TeamID    string          `json:"team_id" binding:"omitempty,uuid"`
}

type GoalResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Scope     string  `json:"scope"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Target    string  `json:"target"`
	SellerID  *string `json:"seller_id"`
	TeamID    *string `json:"team_id"`
}

type ProgressResponse struct {
	GoalResponse
	Progress   string `json:"progress"`
	Remaining  string `json:"remaining"`
	Percentage int64  `json:"percentage"`
}

func mapToResponse(g Goal) GoalResponse {
	resp := GoalResponse{
		ID:        g.ID.String(),
		Title:     g.Title(),
		Scope:     string(g.Scope()),
		StartDate: g.StartDate.Format(dateutil.Layout),
		EndDate:   g.EndDate.Format(dateutil.Layout),
		Target:    money.Format(g.Target),
	}
	if g.SellerID != nil {
		id := g.SellerID.String()
		resp.SellerID = &id
	}
	if g.TeamID != nil {
		id := g.TeamID.String()
		resp.TeamID = &id
	}
	return resp
}
