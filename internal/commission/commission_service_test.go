package commission_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-commission/internal/commission"
	commissionerrors "go-commission/internal/commission/errors"
	commissionMock "go-commission/internal/commission/mock"
	"go-commission/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *commissionMock.MockRepository
	service commission.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := commissionMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: commission.NewService(db, repo),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestCommissionService_Resolve(t *testing.T) {
	ctx := context.Background()
	sellerID, productID := uuid.New(), uuid.New()

	t.Run("manual skips lookups", func(t *testing.T) {
		deps := setupServiceTest(t)
		manual := dec("99.999")

		res, err := deps.service.Resolve(ctx, nil, commission.Terms{SellerID: sellerID, ProductID: productID, Manual: &manual})

		require.NoError(t, err)
		assert.Equal(t, commission.SourceManual, res.Source)
		assert.Equal(t, "100.00", res.Amount.StringFixed(2))
	})

	t.Run("exception found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindBySellerProduct(gomock.Any(), sellerID, productID).
			Return(&commission.Exception{Kind: product.KindPercentage, Value: dec("20")}, nil)

		res, err := deps.service.Resolve(ctx, nil, commission.Terms{SellerID: sellerID, ProductID: productID, TotalFee: dec("1000")})

		require.NoError(t, err)
		assert.Equal(t, commission.SourceException, res.Source)
		assert.Equal(t, "200.00", res.Amount.StringFixed(2))
	})

	t.Run("falls back to product", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindBySellerProduct(gomock.Any(), sellerID, productID).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindProductRule(gomock.Any(), productID).
			Return(commission.Rule{Kind: product.KindFixed, Value: dec("150")}, nil)

		res, err := deps.service.Resolve(ctx, nil, commission.Terms{SellerID: sellerID, ProductID: productID, TotalFee: dec("1000")})

		require.NoError(t, err)
		assert.Equal(t, commission.SourceProduct, res.Source)
		assert.Equal(t, "150.00", res.Amount.StringFixed(2))
	})

	t.Run("missing product", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindBySellerProduct(gomock.Any(), sellerID, productID).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindProductRule(gomock.Any(), productID).Return(commission.Rule{}, gorm.ErrRecordNotFound)

		_, err := deps.service.Resolve(ctx, nil, commission.Terms{SellerID: sellerID, ProductID: productID})

		assert.ErrorIs(t, err, commissionerrors.ErrProductNotFound)
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		deps := setupServiceTest(t)
		dbErr := errors.New("connection reset")
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindBySellerProduct(gomock.Any(), sellerID, productID).Return(nil, dbErr)

		_, err := deps.service.Resolve(ctx, nil, commission.Terms{SellerID: sellerID, ProductID: productID})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCommissionService_Create(t *testing.T) {
	ctx := context.Background()
	sellerID, productID := uuid.New(), uuid.New()
	req := commission.CreateExceptionRequest{
		SellerID:  sellerID.String(),
		ProductID: productID.String(),
		Kind:      "f",
		Value:     dec("300.005"),
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().SellerExists(gomock.Any(), sellerID).Return(true, nil)
		deps.repo.EXPECT().FindProductRule(gomock.Any(), productID).Return(commission.Rule{}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *commission.Exception) error {
				assert.Equal(t, product.KindFixed, e.Kind)
				assert.Equal(t, "300.01", e.Value.StringFixed(2))
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "F", resp.Kind)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate pair", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().SellerExists(gomock.Any(), sellerID).Return(true, nil)
		deps.repo.EXPECT().FindProductRule(gomock.Any(), productID).Return(commission.Rule{}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(errors.New("UNIQUE constraint failed: commission_exceptions.seller_id, commission_exceptions.product_id"))

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, commissionerrors.ErrExceptionAlreadyExists)
	})

	t.Run("unknown seller", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().SellerExists(gomock.Any(), sellerID).Return(false, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, commissionerrors.ErrSellerNotFound)
	})

	t.Run("negative value", func(t *testing.T) {
		deps := setupServiceTest(t)
		bad := req
		bad.Value = dec("-1")

		_, err := deps.service.Create(ctx, bad)

		assert.ErrorIs(t, err, commissionerrors.ErrNegativeValue)
	})
}

func TestCommissionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.repo.EXPECT().Delete(gomock.Any(), id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, commissionerrors.ErrExceptionNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		err := deps.service.Delete(ctx, "x")
		assert.ErrorIs(t, err, commissionerrors.ErrInvalidExceptionID)
	})
}
