package sale

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-commission/internal/access"
	"go-commission/internal/commission"
	"go-commission/internal/customer"
	"go-commission/internal/events"
	"go-commission/internal/messaging/kafka"
	saleerrors "go-commission/internal/sale/errors"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/money"
	"go-commission/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=sale_service.go -destination=mock/sale_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor access.Actor, req CreateSaleRequest, receipts []storage.Upload) (SaleResponse, error)
	GetAll(ctx context.Context, actor access.Actor, filter ListSalesFilter) ([]SaleResponse, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (SaleResponse, error)
	Update(ctx context.Context, actor access.Actor, id string, req UpdateSaleRequest) (SaleResponse, error)
	UpdateCustomer(ctx context.Context, actor access.Actor, id string, in customer.CustomerInput) (SaleResponse, error)
	UpdateStatus(ctx context.Context, actor access.Actor, id string, req UpdateStatusRequest) (SaleResponse, error)

	UploadAttachment(ctx context.Context, actor access.Actor, id string, kind string, file storage.Upload) (AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, actor access.Actor, id string, attachmentID string) error

	Export(ctx context.Context, actor access.Actor, filter ListSalesFilter, format string) (ExportFile, error)
	Summary(ctx context.Context, actor access.Actor, filter ListSalesFilter) (SummaryResponse, error)
	CommissionSummary(ctx context.Context, actor access.Actor, filter ListSalesFilter) (CommissionSummaryResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	customers   customer.Service
	commissions commission.Service
	files       storage.FileStorage
	outbox      kafka.OutboxRepository
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	customers customer.Service,
	commissions commission.Service,
	files storage.FileStorage,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("sale.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sale.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		customers:   customers,
		commissions: commissions,
		files:       files,
		outbox:      outbox,
		loc:         dateutil.Location(),
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, actor access.Actor, req CreateSaleRequest, receipts []storage.Upload) (SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return SaleResponse{}, saleerrors.ErrProductNotFound
	}
	if err := validateAmounts(req.DownPayment, req.InstallmentValue, req.SuccessFee, req.Contribution, req.InstallmentCount); err != nil {
		return SaleResponse{}, err
	}
	soldAt, err := s.parseSoldAt(req.SoldAt)
	if err != nil {
		return SaleResponse{}, err
	}
	for _, r := range receipts {
		if r.Content == nil {
			return SaleResponse{}, saleerrors.ErrAttachmentRequired
		}
	}

	sale := &Sale{
		ID:               uuid.New(),
		SellerID:         actor.UserID,
		ProductID:        productID,
		SoldAt:           soldAt,
		DownPayment:      money.Round(req.DownPayment),
		InstallmentCount: req.InstallmentCount,
		InstallmentValue: money.Round(req.InstallmentValue),
		SuccessFee:       money.Round(req.SuccessFee),
		Contribution:     money.Round(req.Contribution),
		PaymentMethod:    strings.TrimSpace(req.PaymentMethod),
		Notes:            strings.TrimSpace(req.Notes),
		SaleStatus:       SaleStarted,
		PaymentStatus:    PaymentPending,
		ContractStatus:   ContractNotGenerated,
	}
	if req.SaleStatus != "" {
		sale.SaleStatus = SaleStatus(req.SaleStatus)
	}
	sale.recomputeTotal()

	// Files go to storage before the transaction so the rows can reference
	// them; they are removed again if the transaction does not commit.
	attachments := make([]Attachment, 0, len(receipts))
	committed := false
	defer func() {
		if !committed {
			for _, a := range attachments {
				s.removeFile(ctx, a.FileKey)
			}
		}
	}()
	for _, r := range receipts {
		a, err := s.store(ctx, sale.ID, AttachmentReceipt, actor.UserID, r)
		if err != nil {
			return SaleResponse{}, err
		}
		attachments = append(attachments, a)
	}
	if len(attachments) > 0 {
		sale.PaymentStatus = PaymentAwaitingValidation
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.ensureProduct(ctx, qtx, productID); err != nil {
		return SaleResponse{}, err
	}

	c, err := s.customers.Upsert(ctx, tx, req.Customer)
	if err != nil {
		return SaleResponse{}, err
	}
	sale.CustomerID = c.ID

	if err := qtx.Create(ctx, sale); err != nil {
		s.log(ctx).Error("create sale persist failed", zap.Error(err))
		return SaleResponse{}, err
	}
	for i := range attachments {
		if err := qtx.CreateAttachment(ctx, &attachments[i]); err != nil {
			return SaleResponse{}, err
		}
	}

	if err := s.queueLifecycle(ctx, tx, actor, events.EventSaleCreated, sale); err != nil {
		return SaleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SaleResponse{}, err
	}
	committed = true

	s.log(ctx).Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("seller_id", actor.UserID.String()),
		zap.Int("receipts", len(attachments)),
	)
	return s.detail(ctx, actor, sale.ID)
}

func (s *service) GetAll(ctx context.Context, actor access.Actor, filter ListSalesFilter) ([]SaleResponse, error) {
	sales, err := s.list(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		resp = append(resp, mapToResponse(sale))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return SaleResponse{}, saleerrors.ErrInvalidSaleID
	}
	return s.detail(ctx, actor, saleID)
}

func (s *service) Update(ctx context.Context, actor access.Actor, id string, req UpdateSaleRequest) (SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return SaleResponse{}, saleerrors.ErrInvalidSaleID
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return SaleResponse{}, saleerrors.ErrProductNotFound
	}
	if (req.ManualCommission != nil || req.ClearManualCommission) && !actor.Roles.CanManage() {
		return SaleResponse{}, saleerrors.ErrManualCommissionNotAllowed
	}
	if req.ManualCommission != nil && req.ManualCommission.IsNegative() {
		return SaleResponse{}, saleerrors.ErrNegativeAmount
	}
	if err := validateAmounts(req.DownPayment, req.InstallmentValue, req.SuccessFee, req.Contribution, req.InstallmentCount); err != nil {
		return SaleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	sale, err := s.lockForEdit(ctx, qtx, actor, saleID)
	if err != nil {
		return SaleResponse{}, err
	}

	if productID != sale.ProductID {
		if err := s.ensureProduct(ctx, qtx, productID); err != nil {
			return SaleResponse{}, err
		}
		sale.ProductID = productID
	}
	if req.SoldAt != "" {
		soldAt, err := s.parseSoldAt(req.SoldAt)
		if err != nil {
			return SaleResponse{}, err
		}
		sale.SoldAt = soldAt
	}
	sale.DownPayment = money.Round(req.DownPayment)
	sale.InstallmentCount = req.InstallmentCount
	sale.InstallmentValue = money.Round(req.InstallmentValue)
	sale.SuccessFee = money.Round(req.SuccessFee)
	sale.Contribution = money.Round(req.Contribution)
	sale.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	sale.Notes = strings.TrimSpace(req.Notes)
	switch {
	case req.ClearManualCommission:
		sale.ManualCommission = nil
	case req.ManualCommission != nil:
		sale.ManualCommission = money.Ptr(money.Round(*req.ManualCommission))
	}
	sale.recomputeTotal()

	if err := qtx.Update(ctx, sale); err != nil {
		return SaleResponse{}, err
	}
	if sale.PaymentStatus == PaymentApproved {
		if err := s.resolveCommission(ctx, tx, qtx, actor, sale); err != nil {
			return SaleResponse{}, err
		}
	}
	if err := s.queueLifecycle(ctx, tx, actor, events.EventSaleUpdated, sale); err != nil {
		return SaleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SaleResponse{}, err
	}

	s.log(ctx).Info("sale updated", zap.String("sale_id", sale.ID.String()))
	return s.detail(ctx, actor, sale.ID)
}

func (s *service) UpdateCustomer(ctx context.Context, actor access.Actor, id string, in customer.CustomerInput) (SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return SaleResponse{}, saleerrors.ErrInvalidSaleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	sale, err := s.lockForEdit(ctx, qtx, actor, saleID)
	if err != nil {
		return SaleResponse{}, err
	}

	if _, err := s.customers.Apply(ctx, tx, sale.CustomerID, in); err != nil {
		return SaleResponse{}, err
	}
	if sale.PaymentStatus == PaymentApproved {
		if err := s.resolveCommission(ctx, tx, qtx, actor, sale); err != nil {
			return SaleResponse{}, err
		}
	}
	if err := s.queueLifecycle(ctx, tx, actor, events.EventSaleUpdated, sale); err != nil {
		return SaleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SaleResponse{}, err
	}

	s.log(ctx).Info("sale customer updated",
		zap.String("sale_id", sale.ID.String()),
		zap.String("customer_id", sale.CustomerID.String()),
	)
	return s.detail(ctx, actor, sale.ID)
}

func (s *service) UpdateStatus(ctx context.Context, actor access.Actor, id string, req UpdateStatusRequest) (SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return SaleResponse{}, saleerrors.ErrInvalidSaleID
	}
	if req.SaleStatus == nil && req.PaymentStatus == nil && req.ContractStatus == nil {
		return SaleResponse{}, saleerrors.ErrNoStatusChange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	sale, err := s.lock(ctx, qtx, actor, saleID)
	if err != nil {
		return SaleResponse{}, err
	}
	previousPayment := sale.PaymentStatus

	// Permissions are evaluated against the stored state, before any change
	// of this request is applied.
	if req.SaleStatus != nil {
		if !canSetSaleStatus(actor, sale) {
			return SaleResponse{}, saleerrors.ErrStatusNotAllowed
		}
		st := SaleStatus(*req.SaleStatus)
		if !st.Valid() {
			return SaleResponse{}, saleerrors.ErrInvalidStatus
		}
		sale.SaleStatus = st
	}
	if req.PaymentStatus != nil {
		if !canSetPaymentStatus(actor) {
			return SaleResponse{}, saleerrors.ErrStatusNotAllowed
		}
		st := PaymentStatus(*req.PaymentStatus)
		if !st.Valid() {
			return SaleResponse{}, saleerrors.ErrInvalidStatus
		}
		sale.PaymentStatus = st
	}
	if req.ContractStatus != nil {
		if !canSetContractStatus(actor) {
			return SaleResponse{}, saleerrors.ErrStatusNotAllowed
		}
		st := ContractStatus(*req.ContractStatus)
		if !st.Valid() {
			return SaleResponse{}, saleerrors.ErrInvalidStatus
		}
		sale.ContractStatus = st
	}

	if err := qtx.Update(ctx, sale); err != nil {
		return SaleResponse{}, err
	}
	if previousPayment != PaymentApproved && sale.PaymentStatus == PaymentApproved {
		if err := s.resolveCommission(ctx, tx, qtx, actor, sale); err != nil {
			return SaleResponse{}, err
		}
	}
	if err := s.queueLifecycle(ctx, tx, actor, events.EventSaleStatusChanged, sale); err != nil {
		return SaleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SaleResponse{}, err
	}

	s.log(ctx).Info("sale status changed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("sale_status", string(sale.SaleStatus)),
		zap.String("payment_status", string(sale.PaymentStatus)),
		zap.String("contract_status", string(sale.ContractStatus)),
	)
	return s.detail(ctx, actor, sale.ID)
}

// resolveCommission recomputes and stores the final commission of sale and
// queues the matching event, all on tx.
func (s *service) resolveCommission(ctx context.Context, tx *sql.Tx, qtx Repository, actor access.Actor, sale *Sale) error {
	res, err := s.commissions.Resolve(ctx, tx, commission.Terms{
		SellerID:  sale.SellerID,
		ProductID: sale.ProductID,
		TotalFee:  sale.TotalFee,
		Manual:    sale.ManualCommission,
	})
	if err != nil {
		return err
	}

	previous := ""
	if sale.FinalCommission != nil {
		previous = money.Format(*sale.FinalCommission)
	}
	if err := qtx.UpdateCommission(ctx, sale.ID, res.Amount, string(res.Source)); err != nil {
		return err
	}
	source := string(res.Source)
	sale.FinalCommission = money.Ptr(res.Amount)
	sale.CommissionSource = &source

	payload := events.CommissionResolvedEvent{
		Meta:      s.meta(ctx, actor, events.EventCommissionResolved),
		SaleID:    sale.ID.String(),
		SellerID:  sale.SellerID.String(),
		ProductID: sale.ProductID.String(),
		Source:    source,
		Amount:    money.Format(res.Amount),
		Previous:  previous,
	}
	return s.queue(ctx, tx, payload.Meta, sale.ID, events.CommissionResolvedTopic, payload)
}

func (s *service) queueLifecycle(ctx context.Context, tx *sql.Tx, actor access.Actor, eventType string, sale *Sale) error {
	payload := events.SaleLifecycleEvent{
		Meta:          s.meta(ctx, actor, eventType),
		SaleID:        sale.ID.String(),
		SellerID:      sale.SellerID.String(),
		SaleStatus:    string(sale.SaleStatus),
		PaymentStatus: string(sale.PaymentStatus),
		ContractState: string(sale.ContractStatus),
	}
	return s.queue(ctx, tx, payload.Meta, sale.ID, events.SaleLifecycleTopic, payload)
}

func (s *service) meta(ctx context.Context, actor access.Actor, eventType string) events.Meta {
	return events.NewMeta(eventType, contextutil.GetRequestID(ctx), actor.UserID.String())
}

func (s *service) queue(ctx context.Context, tx *sql.Tx, meta events.Meta, saleID uuid.UUID, topic string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	ev, err := kafka.NewOutboxEvent(meta, "sale", saleID.String(), topic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.log(ctx).Error("sale outbox persist failed",
			zap.String("sale_id", saleID.String()),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// lock loads the sale with a row lock. Sales the actor may not see are
// reported as missing.
func (s *service) lock(ctx context.Context, qtx Repository, actor access.Actor, saleID uuid.UUID) (*Sale, error) {
	sale, err := qtx.FindByIDForUpdate(ctx, saleID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !canView(actor, sale) {
		return nil, saleerrors.ErrSaleNotFound
	}
	return sale, nil
}

func (s *service) lockForEdit(ctx context.Context, qtx Repository, actor access.Actor, saleID uuid.UUID) (*Sale, error) {
	sale, err := s.lock(ctx, qtx, actor, saleID)
	if err != nil {
		return nil, err
	}
	if !canEditData(actor, sale) {
		return nil, saleerrors.ErrEditNotAllowed
	}
	return sale, nil
}

func (s *service) ensureProduct(ctx context.Context, qtx Repository, productID uuid.UUID) error {
	ok, err := qtx.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return saleerrors.ErrProductNotFound
	}
	return nil
}

// detail loads a sale with attachments, storage URLs and the caller's
// permissions.
func (s *service) detail(ctx context.Context, actor access.Actor, saleID uuid.UUID) (SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return SaleResponse{}, mapRepositoryError(err)
	}
	if !canView(actor, sale) {
		return SaleResponse{}, saleerrors.ErrSaleNotFound
	}

	resp := mapToResponse(*sale)
	resp.Attachments = make([]AttachmentResponse, 0, len(sale.Attachments))
	for _, a := range sale.Attachments {
		resp.Attachments = append(resp.Attachments, mapAttachment(a, s.url(ctx, a.FileKey)))
	}
	perms := permissionsFor(actor, sale)
	resp.Permissions = &perms
	return resp, nil
}

func (s *service) parseSoldAt(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.now(), nil
	}
	t, err := dateutil.ParseDate(raw, s.loc)
	if err != nil {
		return time.Time{}, saleerrors.ErrInvalidDate
	}
	return t, nil
}

func validateAmounts(downPayment, installmentValue, successFee, contribution decimal.Decimal, installmentCount int) error {
	if installmentCount < 0 {
		return saleerrors.ErrNegativeAmount
	}
	for _, v := range []decimal.Decimal{downPayment, installmentValue, successFee, contribution} {
		if v.IsNegative() {
			return saleerrors.ErrNegativeAmount
		}
	}
	return nil
}

func mapRepositoryError(err error) error {
	if database.IsNotFound(err) {
		return saleerrors.ErrSaleNotFound
	}
	return err
}
