package commission

import (
	"context"
	"database/sql"
	"strings"

	commissionerrors "go-commission/internal/commission/errors"
	"go-commission/internal/product"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"
	"go-commission/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=commission_service.go -destination=mock/commission_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error)
	GetAll(ctx context.Context, filter ListExceptionsFilter) ([]ExceptionResponse, error)
	GetByID(ctx context.Context, id string) (ExceptionResponse, error)
	Update(ctx context.Context, id string, req UpdateExceptionRequest) (ExceptionResponse, error)
	Delete(ctx context.Context, id string) error

	// Resolve computes a sale's commission with lookups bound to tx, so the
	// result is consistent with the mutation that triggered it.
	Resolve(ctx context.Context, tx *sql.Tx, terms Terms) (Resolution, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("commission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("commission.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error) {
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return ExceptionResponse{}, commissionerrors.ErrSellerNotFound
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return ExceptionResponse{}, commissionerrors.ErrProductNotFound
	}
	rule, err := parseRule(req.Kind, req.Value)
	if err != nil {
		return ExceptionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExceptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.SellerExists(ctx, sellerID)
	if err != nil {
		return ExceptionResponse{}, err
	}
	if !exists {
		return ExceptionResponse{}, commissionerrors.ErrSellerNotFound
	}
	if _, err := qtx.FindProductRule(ctx, productID); err != nil {
		if database.IsNotFound(err) {
			return ExceptionResponse{}, commissionerrors.ErrProductNotFound
		}
		return ExceptionResponse{}, err
	}

	e := &Exception{
		ID:        uuid.New(),
		SellerID:  sellerID,
		ProductID: productID,
		Kind:      rule.Kind,
		Value:     rule.Value,
	}
	if err := qtx.Create(ctx, e); err != nil {
		return ExceptionResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ExceptionResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("commission exception created",
		zap.String("exception_id", e.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", productID.String()),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, filter ListExceptionsFilter) ([]ExceptionResponse, error) {
	sellerID, err := optionalUUID(filter.SellerID)
	if err != nil {
		return nil, commissionerrors.ErrSellerNotFound
	}
	productID, err := optionalUUID(filter.ProductID)
	if err != nil {
		return nil, commissionerrors.ErrProductNotFound
	}

	list, err := s.repo.FindAll(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	resp := make([]ExceptionResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExceptionResponse, error) {
	exceptionID, err := uuid.Parse(id)
	if err != nil {
		return ExceptionResponse{}, commissionerrors.ErrInvalidExceptionID
	}
	e, err := s.repo.FindByID(ctx, exceptionID)
	if err != nil {
		return ExceptionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateExceptionRequest) (ExceptionResponse, error) {
	exceptionID, err := uuid.Parse(id)
	if err != nil {
		return ExceptionResponse{}, commissionerrors.ErrInvalidExceptionID
	}
	rule, err := parseRule(req.Kind, req.Value)
	if err != nil {
		return ExceptionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExceptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindByID(ctx, exceptionID)
	if err != nil {
		return ExceptionResponse{}, mapRepositoryError(err)
	}
	e.Kind = rule.Kind
	e.Value = rule.Value

	if err := qtx.Update(ctx, e); err != nil {
		return ExceptionResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ExceptionResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	exceptionID, err := uuid.Parse(id)
	if err != nil {
		return commissionerrors.ErrInvalidExceptionID
	}
	if err := s.repo.Delete(ctx, exceptionID); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("commission exception deleted", zap.String("exception_id", id))
	return nil
}

func (s *service) Resolve(ctx context.Context, tx *sql.Tx, terms Terms) (Resolution, error) {
	if terms.Manual != nil {
		return Resolve(terms, nil, Rule{}), nil
	}

	qtx := s.repo.WithTx(tx)

	var exception *Rule
	e, err := qtx.FindBySellerProduct(ctx, terms.SellerID, terms.ProductID)
	switch {
	case err == nil:
		r := e.Rule()
		exception = &r
	case !database.IsNotFound(err):
		return Resolution{}, err
	}

	productRule := Rule{}
	if exception == nil {
		productRule, err = qtx.FindProductRule(ctx, terms.ProductID)
		if err != nil {
			if database.IsNotFound(err) {
				return Resolution{}, commissionerrors.ErrProductNotFound
			}
			return Resolution{}, err
		}
	}

	res := Resolve(terms, exception, productRule)
	contextutil.GetLogger(ctx, s.logger).Debug("commission resolved",
		zap.String("seller_id", terms.SellerID.String()),
		zap.String("product_id", terms.ProductID.String()),
		zap.String("source", string(res.Source)),
		zap.String("amount", money.Format(res.Amount)),
	)
	return res, nil
}

func parseRule(kind string, value decimal.Decimal) (Rule, error) {
	k := product.CommissionKind(strings.ToUpper(strings.TrimSpace(kind)))
	if !k.Valid() {
		return Rule{}, commissionerrors.ErrInvalidKind
	}
	if value.IsNegative() {
		return Rule{}, commissionerrors.ErrNegativeValue
	}
	return Rule{Kind: k, Value: money.Round(value)}, nil
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapRepositoryError(err error) error {
	switch {
	case database.IsNotFound(err):
		return commissionerrors.ErrExceptionNotFound
	case database.IsUniqueViolation(err, "uq_commission_exceptions_seller_product", "commission_exceptions.seller_id"):
		return commissionerrors.ErrExceptionAlreadyExists
	default:
		return err
	}
}
