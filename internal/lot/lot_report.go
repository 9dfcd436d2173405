package lot

import (
	"bytes"
	"context"
	"strings"

	"go-commission/internal/access"
	loterrors "go-commission/internal/lot/errors"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/export"
	"go-commission/internal/shared/money"

	"github.com/shopspring/decimal"
)

var exportHeaders = []string{
	"Code", "Seller", "Period Start", "Period End", "Closed At", "Closed By",
	"Status", "Total Due", "Total Paid", "Outstanding",
}

func (s *service) Export(ctx context.Context, actor access.Actor, filter ListLotsFilter, format string) (ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatXLSX {
		return ExportFile{}, loterrors.ErrInvalidExportFormat
	}

	lots, err := s.list(ctx, actor, filter)
	if err != nil {
		return ExportFile{}, err
	}

	table := export.Table{Sheet: "Commission Lots", Headers: exportHeaders}
	for _, l := range lots {
		var sellerName, closerName string
		if l.Seller != nil {
			sellerName = l.Seller.Name
		}
		if l.Closer != nil {
			closerName = l.Closer.Name
		}
		table.Rows = append(table.Rows, []any{
			l.Code,
			sellerName,
			l.StartDate.Format(dateutil.Layout),
			l.EndDate.Format(dateutil.Layout),
			l.ClosedAt.In(s.loc),
			closerName,
			string(l.Status),
			l.TotalDue,
			l.TotalPaid,
			l.Outstanding(),
		})
	}

	var buf bytes.Buffer
	file := ExportFile{Name: export.FileName("commission_lots", format, s.now().In(s.loc))}
	if format == export.FormatXLSX {
		file.ContentType = export.ContentTypeXLSX
		err = export.WriteXLSX(&buf, table)
	} else {
		file.ContentType = export.ContentTypeCSV
		err = export.WriteCSV(&buf, table)
	}
	if err != nil {
		return ExportFile{}, err
	}
	file.Data = buf.Bytes()
	return file, nil
}

// Dashboard reports approved commission not yet batched, per seller, and
// the totals of the lots visible to actor.
func (s *service) Dashboard(ctx context.Context, actor access.Actor) (DashboardResponse, error) {
	var eq EligibleQuery
	var lq Query
	if !actor.Roles.CanSettle() {
		id := actor.UserID
		eq.SellerID = &id
		lq.SellerID = &id
	}

	sales, err := s.repo.FindEligibleSales(ctx, eq)
	if err != nil {
		return DashboardResponse{}, err
	}
	lots, err := s.repo.FindAll(ctx, lq)
	if err != nil {
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{
		Unbatched: []SellerTotal{},
		ByStatus: map[string]int{
			string(StatusPending):       0,
			string(StatusPartiallyPaid): 0,
			string(StatusFullyPaid):     0,
		},
	}
	unbatched := decimal.Zero
	for _, b := range groupBySeller(sales) {
		resp.Unbatched = append(resp.Unbatched, b.summary())
		unbatched = unbatched.Add(b.total)
	}

	due, paid := decimal.Zero, decimal.Zero
	for _, l := range lots {
		resp.ByStatus[string(l.Status)]++
		due = due.Add(l.TotalDue)
		paid = paid.Add(l.TotalPaid)
	}

	resp.UnbatchedTotal = money.Format(unbatched)
	resp.Lots = len(lots)
	resp.TotalDue = money.Format(due)
	resp.TotalPaid = money.Format(paid)
	resp.Outstanding = money.Format(due.Sub(paid))
	return resp, nil
}
