package customer

import (
	"context"
	"database/sql"
	"strings"

	customererrors "go-commission/internal/customer/errors"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=customer_service.go -destination=mock/customer_service_mock.go -package=mock
type Service interface {
	Check(ctx context.Context, taxID string) (CheckResponse, error)
	GetAll(ctx context.Context, filter ListCustomersFilter) ([]CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerResponse, error)
	Update(ctx context.Context, id string, in CustomerInput) (CustomerResponse, error)

	// Upsert creates or updates the customer matching in.TaxID inside the
	// caller's transaction.
	Upsert(ctx context.Context, tx *sql.Tx, in CustomerInput) (*Customer, error)
	// Apply overwrites the customer identified by id inside the caller's
	// transaction.
	Apply(ctx context.Context, tx *sql.Tx, id uuid.UUID, in CustomerInput) (*Customer, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Check(ctx context.Context, taxID string) (CheckResponse, error) {
	if strings.TrimSpace(taxID) == "" {
		return CheckResponse{}, customererrors.ErrTaxIDRequired
	}
	digits := NormalizeTaxID(taxID)
	if !ValidTaxID(digits) {
		return CheckResponse{}, customererrors.ErrInvalidTaxID
	}

	c, err := s.repo.FindByTaxID(ctx, digits)
	if err != nil {
		if database.IsNotFound(err) {
			return CheckResponse{Status: CheckNotFound}, nil
		}
		return CheckResponse{}, err
	}

	resp := MapToResponse(*c)
	return CheckResponse{Status: CheckFound, Customer: &resp}, nil
}

func (s *service) GetAll(ctx context.Context, filter ListCustomersFilter) ([]CustomerResponse, error) {
	customers, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, MapToResponse(c))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}

	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, in CustomerInput) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CustomerResponse{}, err
	}
	defer tx.Rollback()

	c, err := s.Apply(ctx, tx, customerID, in)
	if err != nil {
		return CustomerResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CustomerResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("customer updated", zap.String("customer_id", c.ID.String()))
	return MapToResponse(*c), nil
}

func (s *service) Upsert(ctx context.Context, tx *sql.Tx, in CustomerInput) (*Customer, error) {
	digits := NormalizeTaxID(in.TaxID)
	if !ValidTaxID(digits) {
		return nil, customererrors.ErrInvalidTaxID
	}

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByTaxID(ctx, digits)
	if err != nil && !database.IsNotFound(err) {
		return nil, err
	}

	if existing == nil {
		c := &Customer{ID: uuid.New()}
		in.applyTo(c)
		if err := qtx.Create(ctx, c); err != nil {
			return nil, mapRepositoryError(err)
		}
		return c, nil
	}

	in.applyTo(existing)
	if err := qtx.Update(ctx, existing); err != nil {
		return nil, mapRepositoryError(err)
	}
	return existing, nil
}

func (s *service) Apply(ctx context.Context, tx *sql.Tx, id uuid.UUID, in CustomerInput) (*Customer, error) {
	if !ValidTaxID(NormalizeTaxID(in.TaxID)) {
		return nil, customererrors.ErrInvalidTaxID
	}

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	in.applyTo(c)
	if err := qtx.Update(ctx, c); err != nil {
		return nil, mapRepositoryError(err)
	}
	return c, nil
}

func mapRepositoryError(err error) error {
	switch {
	case database.IsNotFound(err):
		return customererrors.ErrCustomerNotFound
	case database.IsUniqueViolation(err, "uq_customers_email", "customers.email"):
		return customererrors.ErrEmailAlreadyUsed
	case database.IsUniqueViolation(err, "uq_customers_tax_id", "customers.tax_id"):
		return customererrors.ErrTaxIDAlreadyUsed
	default:
		return err
	}
}
