package lot

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go-commission/internal/access"
	"go-commission/internal/events"
	loterrors "go-commission/internal/lot/errors"
	"go-commission/internal/sale"
	"go-commission/internal/shared/apperror"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// period is a validated closing window: inclusive calendar days plus the
// matching half-open query.
type period struct {
	start time.Time
	end   time.Time
	query EligibleQuery
}

type sellerBatch struct {
	sellerID uuid.UUID
	name     string
	saleIDs  []uuid.UUID
	total    decimal.Decimal
}

func (b sellerBatch) summary() SellerTotal {
	return SellerTotal{
		SellerID:   b.sellerID.String(),
		SellerName: b.name,
		Sales:      len(b.saleIDs),
		Total:      money.Format(b.total),
	}
}

func commissionOf(sl sale.Sale) decimal.Decimal {
	if sl.FinalCommission == nil {
		return decimal.Zero
	}
	return *sl.FinalCommission
}

// groupBySeller sums final commissions per seller, ordered by seller name.
func groupBySeller(sales []sale.Sale) []sellerBatch {
	index := map[uuid.UUID]int{}
	var batches []sellerBatch
	for _, sl := range sales {
		i, ok := index[sl.SellerID]
		if !ok {
			name := sl.SellerID.String()
			if sl.Seller != nil {
				name = sl.Seller.Name
			}
			batches = append(batches, sellerBatch{sellerID: sl.SellerID, name: name, total: decimal.Zero})
			i = len(batches) - 1
			index[sl.SellerID] = i
		}
		batches[i].saleIDs = append(batches[i].saleIDs, sl.ID)
		batches[i].total = batches[i].total.Add(commissionOf(sl))
	}
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].name == batches[j].name {
			return batches[i].sellerID.String() < batches[j].sellerID.String()
		}
		return batches[i].name < batches[j].name
	})
	return batches
}

func (s *service) period(req CloseRequest) (period, error) {
	start, err := dateutil.ParseDate(req.StartDate, s.loc)
	if err != nil {
		return period{}, loterrors.ErrInvalidDate
	}
	end, err := dateutil.ParseDate(req.EndDate, s.loc)
	if err != nil {
		return period{}, loterrors.ErrInvalidDate
	}
	if start.After(end) {
		return period{}, loterrors.ErrInvalidDateRange
	}

	from, to := dateutil.Range(start, end, s.loc)
	p := period{start: start, end: end, query: EligibleQuery{From: &from, To: &to}}
	if req.SellerID != "" {
		id, err := uuid.Parse(req.SellerID)
		if err != nil {
			return period{}, apperror.InvalidField("seller_id")
		}
		p.query.SellerID = &id
	}
	return p, nil
}

func (s *service) Preview(ctx context.Context, actor access.Actor, req CloseRequest) (PreviewResponse, error) {
	if !actor.Roles.CanSettle() {
		return PreviewResponse{}, loterrors.ErrCloseNotAllowed
	}
	p, err := s.period(req)
	if err != nil {
		return PreviewResponse{}, err
	}
	sales, err := s.repo.FindEligibleSales(ctx, p.query)
	if err != nil {
		return PreviewResponse{}, err
	}

	resp := PreviewResponse{
		StartDate: p.start.Format(dateutil.Layout),
		EndDate:   p.end.Format(dateutil.Layout),
		Sellers:   []SellerTotal{},
	}
	grand := decimal.Zero
	for _, b := range groupBySeller(sales) {
		resp.Sellers = append(resp.Sellers, b.summary())
		grand = grand.Add(b.total)
	}
	resp.GrandTotal = money.Format(grand)
	return resp, nil
}

// Close creates one lot per seller with a positive commission total in the
// period. Each seller is closed in its own transaction; a failure is
// reported without undoing the lots already created.
func (s *service) Close(ctx context.Context, actor access.Actor, req CloseRequest) (CloseResult, error) {
	if !actor.Roles.CanSettle() {
		return CloseResult{}, loterrors.ErrCloseNotAllowed
	}
	p, err := s.period(req)
	if err != nil {
		return CloseResult{}, err
	}
	sales, err := s.repo.FindEligibleSales(ctx, p.query)
	if err != nil {
		return CloseResult{}, err
	}
	if len(sales) == 0 {
		return CloseResult{}, loterrors.ErrNoSalesFound
	}

	result := CloseResult{Created: []LotResponse{}, Skipped: []SellerTotal{}, Failed: []SellerFailure{}}
	var payable []sellerBatch
	for _, b := range groupBySeller(sales) {
		if b.total.IsPositive() {
			payable = append(payable, b)
		} else {
			result.Skipped = append(result.Skipped, b.summary())
		}
	}
	if len(payable) == 0 {
		return CloseResult{}, loterrors.ErrNoCommissionsToPay
	}

	for _, b := range payable {
		l, err := s.closeSeller(ctx, actor, p, b)
		if err != nil {
			s.log(ctx).Error("close commission lot failed",
				zap.String("seller_id", b.sellerID.String()),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, SellerFailure{
				SellerID:   b.sellerID.String(),
				SellerName: b.name,
				Reason:     apperror.ToHTTP(err).Message,
			})
			continue
		}
		resp := mapToResponse(*l)
		resp.SellerName = b.name
		result.Created = append(result.Created, resp)
	}

	s.log(ctx).Info("commission lots closed",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) closeSeller(ctx context.Context, actor access.Actor, p period, b sellerBatch) (*Lot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	q := p.query
	sellerID := b.sellerID
	q.SellerID = &sellerID

	locked, err := qtx.LockEligibleSales(ctx, q)
	if err != nil {
		return nil, err
	}
	// The rows must still be the ones grouped before the lock was taken.
	if len(locked) != len(b.saleIDs) {
		return nil, loterrors.ErrSalesChanged
	}
	total := decimal.Zero
	saleIDs := make([]uuid.UUID, 0, len(locked))
	for _, sl := range locked {
		total = total.Add(commissionOf(sl))
		saleIDs = append(saleIDs, sl.ID)
	}
	if !total.Equal(b.total) {
		return nil, loterrors.ErrSalesChanged
	}

	now := s.now()
	year := now.In(s.loc).Year()
	seq, err := s.counters.WithTx(tx).GetNextValue(ctx, CodeScope, strconv.Itoa(year))
	if err != nil {
		return nil, err
	}

	l := &Lot{
		ID:        uuid.New(),
		Code:      FormatCode(year, seq),
		SellerID:  b.sellerID,
		StartDate: p.start,
		EndDate:   p.end,
		ClosedBy:  actor.UserID,
		ClosedAt:  now,
		Status:    StatusPending,
		TotalDue:  money.Round(total),
		TotalPaid: decimal.Zero,
	}
	if err := qtx.Create(ctx, l); err != nil {
		return nil, err
	}

	n, err := qtx.AssignSales(ctx, l.ID, saleIDs)
	if err != nil {
		return nil, err
	}
	if n != int64(len(saleIDs)) {
		return nil, loterrors.ErrSalesChanged
	}

	ids := make([]string, 0, len(saleIDs))
	for _, id := range saleIDs {
		ids = append(ids, id.String())
	}
	ev := events.LotClosedEvent{
		Meta:      s.meta(ctx, actor, events.EventLotClosed),
		LotID:     l.ID.String(),
		Code:      l.Code,
		SellerID:  l.SellerID.String(),
		TotalDue:  money.Format(l.TotalDue),
		SaleIDs:   ids,
		StartDate: p.start.Format(dateutil.Layout),
		EndDate:   p.end.Format(dateutil.Layout),
	}
	if err := s.queue(ctx, tx, ev.Meta, l.ID, events.LotClosedTopic, ev); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log(ctx).Info("commission lot created",
		zap.String("lot_id", l.ID.String()),
		zap.String("code", l.Code),
		zap.String("seller_id", l.SellerID.String()),
		zap.String("total_due", money.Format(l.TotalDue)),
		zap.Int("sales", len(saleIDs)),
	)
	return l, nil
}
