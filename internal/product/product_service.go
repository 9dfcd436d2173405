package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	producterrors "go-commission/internal/product/errors"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"
	"go-commission/internal/shared/money"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsCacheKey = "products:options"
	optionsCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=product_service.go -destination=mock/product_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	GetAll(ctx context.Context, filter ListProductsFilter) ([]ProductResponse, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string) error
	Options(ctx context.Context) ([]ProductOption, error)
	Suggestion(ctx context.Context, id string) (SuggestionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	p := &Product{ID: uuid.New(), IsActive: true}
	if err := apply(p, req); err != nil {
		return ProductResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProductResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProductResponse{}, err
	}

	s.invalidateOptions(ctx)
	contextutil.GetLogger(ctx, s.logger).Info("product created", zap.String("product_id", p.ID.String()))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, filter ListProductsFilter) ([]ProductResponse, error) {
	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(products), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	p, err := s.find(ctx, s.repo, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProductResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := s.find(ctx, qtx, id)
	if err != nil {
		return ProductResponse{}, err
	}

	if err := apply(p, req.CreateProductRequest); err != nil {
		return ProductResponse{}, err
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, p); err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProductResponse{}, err
	}

	s.invalidateOptions(ctx)
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return producterrors.ErrInvalidProductID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, productID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptions(ctx)
	return nil
}

// Options lists active products for select boxes. Results are cached in
// Redis and concurrent misses share one database query.
func (s *service) Options(ctx context.Context) ([]ProductOption, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result()
		if err == nil {
			var resp []ProductOption
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		products, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]ProductOption, 0, len(products))
		for _, p := range products {
			resp = append(resp, ProductOption{ID: p.ID.String(), Name: p.Name})
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, data, optionsCacheTTL).Err(); err != nil {
					contextutil.GetLogger(ctx, s.logger).Warn("failed to cache product options", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ProductOption), nil
}

func (s *service) Suggestion(ctx context.Context, id string) (SuggestionResponse, error) {
	p, err := s.find(ctx, s.repo, id)
	if err != nil {
		return SuggestionResponse{}, err
	}

	total := p.SuggestedTotalFee()
	commission := p.CommissionValue
	if p.CommissionKind == KindPercentage {
		commission = money.Percent(total, p.CommissionValue)
	}

	return SuggestionResponse{
		ProductID:         p.ID.String(),
		DownPayment:       money.Format(p.SuggestedDownPayment),
		InstallmentCount:  p.SuggestedInstallmentCount,
		InstallmentValue:  money.Format(p.SuggestedInstallmentValue),
		SuccessFee:        money.Format(p.SuggestedSuccessFee),
		Contribution:      money.Format(p.SuggestedContribution),
		TotalFee:          money.Format(total),
		CommissionKind:    string(p.CommissionKind),
		CommissionValue:   money.Format(p.CommissionValue),
		DefaultCommission: money.Format(money.Round(commission)),
	}, nil
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, producterrors.ErrInvalidProductID
	}
	p, err := repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate cache",
			zap.String("key", OptionsCacheKey),
			zap.Error(err),
		)
	}
}

func apply(p *Product, req CreateProductRequest) error {
	kind := CommissionKind(strings.ToUpper(strings.TrimSpace(req.CommissionKind)))
	if !kind.Valid() {
		return producterrors.ErrInvalidCommissionKind
	}
	for _, v := range []decimal.Decimal{
		req.Price,
		req.CommissionValue,
		req.SuggestedDownPayment,
		req.SuggestedInstallmentValue,
		req.SuggestedSuccessFee,
		req.SuggestedContribution,
	} {
		if v.IsNegative() {
			return producterrors.ErrNegativeAmount
		}
	}
	if req.SuggestedInstallmentCount < 0 {
		return producterrors.ErrNegativeAmount
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = strings.TrimSpace(req.Description)
	p.Price = money.Round(req.Price)
	p.CommissionKind = kind
	p.CommissionValue = money.Round(req.CommissionValue)
	p.SuggestedDownPayment = money.Round(req.SuggestedDownPayment)
	p.SuggestedInstallmentCount = req.SuggestedInstallmentCount
	p.SuggestedInstallmentValue = money.Round(req.SuggestedInstallmentValue)
	p.SuggestedSuccessFee = money.Round(req.SuggestedSuccessFee)
	p.SuggestedContribution = money.Round(req.SuggestedContribution)
	return nil
}

func mapRepositoryError(err error) error {
	switch {
	case database.IsNotFound(err):
		return producterrors.ErrProductNotFound
	case database.IsUniqueViolation(err, "uq_products_name", "products.name"):
		return producterrors.ErrProductAlreadyExists
	case database.IsForeignKeyViolation(err):
		return producterrors.ErrProductInUse
	default:
		return err
	}
}
