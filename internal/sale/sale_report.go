package sale

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"go-commission/internal/access"
	saleerrors "go-commission/internal/sale/errors"
	"go-commission/internal/shared/apperror"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/export"
	"go-commission/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var exportHeaders = []string{
	"ID", "Date", "Seller", "Customer", "Tax ID", "Product",
	"Total Fee", "Down Payment", "Installments", "Installment Value",
	"Success Fee", "Contribution", "Sale Status", "Payment Status", "Contract Status",
}

// list applies filter within what actor may see. Sellers only ever get
// their own sales, whatever seller filter they send.
func (s *service) list(ctx context.Context, actor access.Actor, filter ListSalesFilter) ([]Sale, error) {
	q, err := s.query(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx, q)
}

func (s *service) query(actor access.Actor, filter ListSalesFilter) (Query, error) {
	q := Query{
		CustomerName:   strings.TrimSpace(filter.CustomerName),
		SaleStatus:     SaleStatus(filter.SaleStatus),
		PaymentStatus:  PaymentStatus(filter.PaymentStatus),
		ContractStatus: ContractStatus(filter.ContractStatus),
	}

	if !actor.Roles.IsStaff() {
		id := actor.UserID
		q.SellerID = &id
	} else if filter.SellerID != "" {
		id, err := uuid.Parse(filter.SellerID)
		if err != nil {
			return Query{}, apperror.InvalidField("seller_id")
		}
		q.SellerID = &id
	}
	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return Query{}, apperror.InvalidField("product_id")
		}
		q.ProductID = &id
	}

	if filter.StartDate != "" {
		start, err := dateutil.ParseDate(filter.StartDate, s.loc)
		if err != nil {
			return Query{}, saleerrors.ErrInvalidDate
		}
		q.From = &start
	}
	if filter.EndDate != "" {
		end, err := dateutil.ParseDate(filter.EndDate, s.loc)
		if err != nil {
			return Query{}, saleerrors.ErrInvalidDate
		}
		to := end.AddDate(0, 0, 1)
		q.To = &to
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return Query{}, saleerrors.ErrInvalidDateRange
	}
	return q, nil
}

func (s *service) Export(ctx context.Context, actor access.Actor, filter ListSalesFilter, format string) (ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatXLSX {
		return ExportFile{}, saleerrors.ErrInvalidExportFormat
	}

	sales, err := s.list(ctx, actor, filter)
	if err != nil {
		return ExportFile{}, err
	}

	table := export.Table{Sheet: "Sales", Headers: exportHeaders}
	for _, sale := range sales {
		var sellerName, customerName, taxID, productName string
		if sale.Seller != nil {
			sellerName = sale.Seller.Name
		}
		if sale.Customer != nil {
			customerName = sale.Customer.FullName
			taxID = sale.Customer.TaxID
		}
		if sale.Product != nil {
			productName = sale.Product.Name
		}
		table.Rows = append(table.Rows, []any{
			sale.ID.String(),
			sale.SoldAt.In(s.loc),
			sellerName,
			customerName,
			taxID,
			productName,
			sale.TotalFee,
			sale.DownPayment,
			sale.InstallmentCount,
			sale.InstallmentValue,
			sale.SuccessFee,
			sale.Contribution,
			string(sale.SaleStatus),
			string(sale.PaymentStatus),
			string(sale.ContractStatus),
		})
	}

	var buf bytes.Buffer
	file := ExportFile{Name: export.FileName("sales", format, s.now().In(s.loc))}
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

type bucket struct {
	label string
	count int
	total decimal.Decimal
}

func (s *service) Summary(ctx context.Context, actor access.Actor, filter ListSalesFilter) (SummaryResponse, error) {
	sales, err := s.list(ctx, actor, filter)
	if err != nil {
		return SummaryResponse{}, err
	}

	total := decimal.Zero
	bySeller := map[string]*bucket{}
	byProduct := map[string]*bucket{}
	byMonth := map[string]*bucket{}

	add := func(m map[string]*bucket, key, label string, fee decimal.Decimal) {
		b, ok := m[key]
		if !ok {
			b = &bucket{label: label, total: decimal.Zero}
			m[key] = b
		}
		b.count++
		b.total = b.total.Add(fee)
	}

	for _, sale := range sales {
		total = total.Add(sale.TotalFee)

		sellerLabel := sale.SellerID.String()
		if sale.Seller != nil {
			sellerLabel = sale.Seller.Name
		}
		productLabel := sale.ProductID.String()
		if sale.Product != nil {
			productLabel = sale.Product.Name
		}
		month := sale.SoldAt.In(s.loc).Format("2006-01")

		add(bySeller, sale.SellerID.String(), sellerLabel, sale.TotalFee)
		add(byProduct, sale.ProductID.String(), productLabel, sale.TotalFee)
		add(byMonth, month, month, sale.TotalFee)
	}

	average := decimal.Zero
	if len(sales) > 0 {
		average = money.Round(total.Div(decimal.NewFromInt(int64(len(sales)))))
	}

	months := breakdowns(byMonth)
	sort.Slice(months, func(i, j int) bool { return months[i].Key < months[j].Key })

	return SummaryResponse{
		Count:         len(sales),
		TotalFee:      money.Format(total),
		AverageTicket: money.Format(average),
		BySeller:      byTotalDesc(breakdowns(bySeller)),
		ByProduct:     byTotalDesc(breakdowns(byProduct)),
		ByMonth:       months,
	}, nil
}

func breakdowns(m map[string]*bucket) []Breakdown {
	out := make([]Breakdown, 0, len(m))
	for key, b := range m {
		out = append(out, Breakdown{Key: key, Label: b.label, Count: b.count, TotalFee: money.Format(b.total)})
	}
	return out
}

func byTotalDesc(items []Breakdown) []Breakdown {
	sort.Slice(items, func(i, j int) bool {
		a := decimal.RequireFromString(items[i].TotalFee)
		b := decimal.RequireFromString(items[j].TotalFee)
		if a.Equal(b) {
			return items[i].Label < items[j].Label
		}
		return a.GreaterThan(b)
	})
	return items
}

type commissionBucket struct {
	label string
	count int
	paid  int
	total decimal.Decimal
}

func (b *commissionBucket) add(c *decimal.Decimal) {
	b.count++
	if c != nil {
		b.paid++
		b.total = b.total.Add(*c)
	}
}

// average is taken over the sales that carry a final commission.
func (b *commissionBucket) average() decimal.Decimal {
	if b.paid == 0 {
		return decimal.Zero
	}
	return money.Round(b.total.Div(decimal.NewFromInt(int64(b.paid))))
}

// CommissionSummary narrows filter to approved sales and reports their final
// commission overall and per seller, product and month. A payment status
// filter other than approved matches nothing.
func (s *service) CommissionSummary(ctx context.Context, actor access.Actor, filter ListSalesFilter) (CommissionSummaryResponse, error) {
	if !actor.Roles.HasAny(access.RoleAdmin, access.RoleManager, access.RoleFinance, access.RoleSeller) {
		return CommissionSummaryResponse{}, saleerrors.ErrCommissionSummaryNotAllowed
	}
	q, err := s.query(actor, filter)
	if err != nil {
		return CommissionSummaryResponse{}, err
	}

	var sales []Sale
	if q.PaymentStatus == "" || q.PaymentStatus == PaymentApproved {
		q.PaymentStatus = PaymentApproved
		sales, err = s.repo.FindAll(ctx, q)
		if err != nil {
			return CommissionSummaryResponse{}, err
		}
	}

	overall := &commissionBucket{total: decimal.Zero}
	bySeller := map[string]*commissionBucket{}
	byProduct := map[string]*commissionBucket{}
	byMonth := map[string]*commissionBucket{}

	add := func(m map[string]*commissionBucket, key, label string, c *decimal.Decimal) {
		b, ok := m[key]
		if !ok {
			b = &commissionBucket{label: label, total: decimal.Zero}
			m[key] = b
		}
		b.add(c)
	}

	for _, sale := range sales {
		sellerLabel := sale.SellerID.String()
		if sale.Seller != nil {
			sellerLabel = sale.Seller.Name
		}
		productLabel := sale.ProductID.String()
		if sale.Product != nil {
			productLabel = sale.Product.Name
		}
		month := sale.SoldAt.In(s.loc).Format("2006-01")

		overall.add(sale.FinalCommission)
		add(bySeller, sale.SellerID.String(), sellerLabel, sale.FinalCommission)
		add(byProduct, sale.ProductID.String(), productLabel, sale.FinalCommission)
		add(byMonth, month, month, sale.FinalCommission)
	}

	months := commissionBreakdowns(byMonth)
	sort.Slice(months, func(i, j int) bool { return months[i].Key < months[j].Key })

	return CommissionSummaryResponse{
		Count:     overall.count,
		Total:     money.Format(overall.total),
		Average:   money.Format(overall.average()),
		BySeller:  commissionByTotalDesc(commissionBreakdowns(bySeller)),
		ByProduct: commissionByTotalDesc(commissionBreakdowns(byProduct)),
		ByMonth:   months,
	}, nil
}

func commissionBreakdowns(m map[string]*commissionBucket) []CommissionBreakdown {
	out := make([]CommissionBreakdown, 0, len(m))
	for key, b := range m {
		out = append(out, CommissionBreakdown{
			Key:     key,
			Label:   b.label,
			Count:   b.count,
			Total:   money.Format(b.total),
			Average: money.Format(b.average()),
		})
	}
	return out
}

func commissionByTotalDesc(items []CommissionBreakdown) []CommissionBreakdown {
	sort.Slice(items, func(i, j int) bool {
		a := decimal.RequireFromString(items[i].Total)
		b := decimal.RequireFromString(items[j].Total)
		if a.Equal(b) {
			return items[i].Label < items[j].Label
		}
		return a.GreaterThan(b)
	})
	return items
}
