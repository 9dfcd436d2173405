package lot

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-commission/internal/access"
	"go-commission/internal/events"
	loterrors "go-commission/internal/lot/errors"
	"go-commission/internal/messaging/kafka"
	"go-commission/internal/shared/apperror"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/counter"
	"go-commission/internal/shared/database"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/money"
	"go-commission/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=lot_service.go -destination=mock/lot_service_mock.go -package=mock
type Service interface {
	Preview(ctx context.Context, actor access.Actor, req CloseRequest) (PreviewResponse, error)
	Close(ctx context.Context, actor access.Actor, req CloseRequest) (CloseResult, error)

	GetAll(ctx context.Context, actor access.Actor, filter ListLotsFilter) ([]LotResponse, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (LotDetailResponse, error)

	RecordPayment(ctx context.Context, actor access.Actor, id string, req RecordPaymentRequest, proof *storage.Upload) (PaymentResponse, error)
	UploadAttachment(ctx context.Context, actor access.Actor, id string, description string, file storage.Upload) (AttachmentResponse, error)
	Delete(ctx context.Context, actor access.Actor, id string) error

	Export(ctx context.Context, actor access.Actor, filter ListLotsFilter, format string) (ExportFile, error)
	Dashboard(ctx context.Context, actor access.Actor) (DashboardResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	files    storage.FileStorage
	outbox   kafka.OutboxRepository
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	files storage.FileStorage,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("lot.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lot.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		files:    files,
		outbox:   outbox,
		loc:      dateutil.Location(),
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// canView lets settling roles see every lot and sellers their own.
func canView(actor access.Actor, l *Lot) bool {
	return actor.Roles.CanSettle() || l.SellerID == actor.UserID
}

func (s *service) GetAll(ctx context.Context, actor access.Actor, filter ListLotsFilter) ([]LotResponse, error) {
	lots, err := s.list(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		resp = append(resp, mapToResponse(l))
	}
	return resp, nil
}

func (s *service) list(ctx context.Context, actor access.Actor, filter ListLotsFilter) ([]Lot, error) {
	q := Query{Status: Status(filter.Status)}

	if !actor.Roles.CanSettle() {
		id := actor.UserID
		q.SellerID = &id
	} else if filter.SellerID != "" {
		id, err := uuid.Parse(filter.SellerID)
		if err != nil {
			return nil, apperror.InvalidField("seller_id")
		}
		q.SellerID = &id
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, apperror.InvalidField("status")
	}

	if filter.StartDate != "" {
		start, err := dateutil.ParseDate(filter.StartDate, s.loc)
		if err != nil {
			return nil, loterrors.ErrInvalidDate
		}
		q.From = &start
	}
	if filter.EndDate != "" {
		end, err := dateutil.ParseDate(filter.EndDate, s.loc)
		if err != nil {
			return nil, loterrors.ErrInvalidDate
		}
		to := end.AddDate(0, 0, 1)
		q.To = &to
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return nil, loterrors.ErrInvalidDateRange
	}

	return s.repo.FindAll(ctx, q)
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (LotDetailResponse, error) {
	lotID, err := uuid.Parse(id)
	if err != nil {
		return LotDetailResponse{}, loterrors.ErrInvalidLotID
	}

	l, err := s.repo.FindByID(ctx, lotID)
	if err != nil {
		return LotDetailResponse{}, mapRepositoryError(err)
	}
	if !canView(actor, l) {
		return LotDetailResponse{}, loterrors.ErrLotNotFound
	}

	sales, err := s.repo.FindSales(ctx, lotID)
	if err != nil {
		return LotDetailResponse{}, err
	}

	resp := LotDetailResponse{
		LotResponse: mapToResponse(*l),
		Sales:       make([]LotSaleResponse, 0, len(sales)),
		Payments:    make([]PaymentResponse, 0, len(l.Payments)),
		Attachments: make([]AttachmentResponse, 0, len(l.Attachments)),
	}
	for _, sl := range sales {
		resp.Sales = append(resp.Sales, mapSale(sl))
	}
	for _, p := range l.Payments {
		url := ""
		if p.ProofKey != nil {
			url = s.url(ctx, *p.ProofKey)
		}
		resp.Payments = append(resp.Payments, mapPayment(p, url))
	}
	for _, a := range l.Attachments {
		resp.Attachments = append(resp.Attachments, mapAttachment(a, s.url(ctx, a.FileKey)))
	}
	return resp, nil
}

// RecordPayment adds a transaction to the lot and recomputes its totals
// under the lot's row lock. The amount may exceed the outstanding balance
// by at most one cent.
func (s *service) RecordPayment(ctx context.Context, actor access.Actor, id string, req RecordPaymentRequest, proof *storage.Upload) (PaymentResponse, error) {
	if !actor.Roles.CanSettle() {
		return PaymentResponse{}, loterrors.ErrPaymentNotAllowed
	}
	lotID, err := uuid.Parse(id)
	if err != nil {
		return PaymentResponse{}, loterrors.ErrInvalidLotID
	}
	amount, err := money.Parse(strings.TrimSpace(req.Amount))
	if errors.Is(err, money.ErrPrecision) {
		return PaymentResponse{}, loterrors.ErrAmountPrecision
	}
	if err != nil {
		return PaymentResponse{}, apperror.InvalidField("amount")
	}
	if !amount.IsPositive() {
		return PaymentResponse{}, loterrors.ErrInvalidAmount
	}

	payment := &PaymentTransaction{
		ID:          uuid.New(),
		LotID:       lotID,
		Amount:      amount,
		PaidAt:      s.now(),
		Description: strings.TrimSpace(req.Description),
		RecordedBy:  actor.UserID,
	}

	committed := false
	if proof != nil && proof.Content != nil {
		key, err := s.store(ctx, lotID, *proof)
		if err != nil {
			return PaymentResponse{}, err
		}
		defer func() {
			if !committed {
				s.removeFile(ctx, key)
			}
		}()
		payment.ProofKey = &key
		payment.ProofName = proof.Filename
		payment.ProofContentType = proof.ContentType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, lotID)
	if err != nil {
		return PaymentResponse{}, mapRepositoryError(err)
	}
	if amount.GreaterThan(l.Outstanding().Add(money.Cent)) {
		return PaymentResponse{}, loterrors.ErrAmountExceedsBalance
	}

	if err := qtx.CreatePayment(ctx, payment); err != nil {
		return PaymentResponse{}, err
	}
	total, err := qtx.SumPayments(ctx, lotID)
	if err != nil {
		return PaymentResponse{}, err
	}
	total = money.Round(total)
	status := DeriveStatus(total, l.TotalDue)
	if err := qtx.UpdateTotals(ctx, lotID, total, status); err != nil {
		return PaymentResponse{}, err
	}

	ev := events.LotPaymentRecordedEvent{
		Meta:          s.meta(ctx, actor, events.EventLotPaymentRecorded),
		LotID:         lotID.String(),
		TransactionID: payment.ID.String(),
		Amount:        money.Format(amount),
		TotalPaid:     money.Format(total),
		Status:        string(status),
	}
	if err := s.queue(ctx, tx, ev.Meta, lotID, events.LotPaymentRecordedTopic, ev); err != nil {
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PaymentResponse{}, err
	}
	committed = true

	s.log(ctx).Info("commission payment recorded",
		zap.String("lot_id", lotID.String()),
		zap.String("amount", money.Format(amount)),
		zap.String("total_paid", money.Format(total)),
		zap.String("status", string(status)),
	)

	url := ""
	if payment.ProofKey != nil {
		url = s.url(ctx, *payment.ProofKey)
	}
	resp := mapPayment(*payment, url)
	resp.TotalPaid = money.Format(total)
	resp.Status = string(status)
	return resp, nil
}

func (s *service) UploadAttachment(ctx context.Context, actor access.Actor, id string, description string, file storage.Upload) (AttachmentResponse, error) {
	if !actor.Roles.CanSettle() {
		return AttachmentResponse{}, loterrors.ErrAttachNotAllowed
	}
	lotID, err := uuid.Parse(id)
	if err != nil {
		return AttachmentResponse{}, loterrors.ErrInvalidLotID
	}
	if file.Content == nil {
		return AttachmentResponse{}, loterrors.ErrAttachmentRequired
	}
	if _, err := s.repo.FindByID(ctx, lotID); err != nil {
		return AttachmentResponse{}, mapRepositoryError(err)
	}

	key, err := s.store(ctx, lotID, file)
	if err != nil {
		return AttachmentResponse{}, err
	}
	a := Attachment{
		ID:          uuid.New(),
		LotID:       lotID,
		FileKey:     key,
		FileName:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		Description: strings.TrimSpace(description),
		UploadedBy:  actor.UserID,
	}
	if err := s.repo.CreateAttachment(ctx, &a); err != nil {
		s.removeFile(ctx, key)
		return AttachmentResponse{}, err
	}

	s.log(ctx).Info("lot attachment uploaded",
		zap.String("lot_id", lotID.String()),
		zap.String("key", key),
	)
	return mapAttachment(a, s.url(ctx, key)), nil
}

// Delete dissolves a lot. Its sales become eligible for a new lot again and
// keep their approval; stored files are removed after commit.
func (s *service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !actor.Roles.Has(access.RoleAdmin) {
		return loterrors.ErrDeleteNotAllowed
	}
	lotID, err := uuid.Parse(id)
	if err != nil {
		return loterrors.ErrInvalidLotID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByIDForUpdate(ctx, lotID); err != nil {
		return mapRepositoryError(err)
	}
	l, err := qtx.FindByID(ctx, lotID)
	if err != nil {
		return mapRepositoryError(err)
	}
	sales, err := qtx.FindSales(ctx, lotID)
	if err != nil {
		return err
	}

	if _, err := qtx.ReleaseSales(ctx, lotID); err != nil {
		return err
	}
	if err := qtx.DeletePayments(ctx, lotID); err != nil {
		return err
	}
	if err := qtx.DeleteAttachments(ctx, lotID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, lotID); err != nil {
		return mapRepositoryError(err)
	}

	saleIDs := make([]string, 0, len(sales))
	for _, sl := range sales {
		saleIDs = append(saleIDs, sl.ID.String())
	}
	ev := events.LotDeletedEvent{
		Meta:     s.meta(ctx, actor, events.EventLotDeleted),
		LotID:    lotID.String(),
		Code:     l.Code,
		SellerID: l.SellerID.String(),
		SaleIDs:  saleIDs,
	}
	if err := s.queue(ctx, tx, ev.Meta, lotID, events.LotDeletedTopic, ev); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, p := range l.Payments {
		if p.ProofKey != nil {
			s.removeFile(ctx, *p.ProofKey)
		}
	}
	for _, a := range l.Attachments {
		s.removeFile(ctx, a.FileKey)
	}

	s.log(ctx).Info("commission lot deleted",
		zap.String("lot_id", lotID.String()),
		zap.String("code", l.Code),
		zap.Int("released_sales", len(saleIDs)),
	)
	return nil
}

func (s *service) meta(ctx context.Context, actor access.Actor, eventType string) events.Meta {
	return events.NewMeta(eventType, contextutil.GetRequestID(ctx), actor.UserID.String())
}

func (s *service) queue(ctx context.Context, tx *sql.Tx, meta events.Meta, lotID uuid.UUID, topic string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	ev, err := kafka.NewOutboxEvent(meta, "commission_lot", lotID.String(), topic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.log(ctx).Error("lot outbox persist failed",
			zap.String("lot_id", lotID.String()),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// store saves file under commissions/lot_<id>/ and returns its key.
func (s *service) store(ctx context.Context, lotID uuid.UUID, file storage.Upload) (string, error) {
	key := storage.NewKey(file.Filename, "commissions", "lot_"+lotID.String())
	if err := s.files.Save(ctx, key, file.Content, file.Size, file.ContentType); err != nil {
		s.log(ctx).Error("store lot file failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return key, nil
}

func (s *service) removeFile(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		s.log(ctx).Warn("remove stored file failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) url(ctx context.Context, key string) string {
	u, err := s.files.URL(ctx, key)
	if err != nil {
		s.log(ctx).Warn("resolve file url failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return u
}

func mapRepositoryError(err error) error {
	if database.IsNotFound(err) {
		return loterrors.ErrLotNotFound
	}
	return err
}
