package customer_test

import (
	"context"
	"database/sql"
	"testing"

	"go-commission/internal/customer"
	customererrors "go-commission/internal/customer/errors"
	customerMock "go-commission/internal/customer/mock"

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
	repo    *customerMock.MockRepository
	service customer.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := customerMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: customer.NewService(db, repo),
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

func validInput() customer.CustomerInput {
	return customer.CustomerInput{
		TaxID:    "123.456.789-01",
		FullName: "  Maria Souza ",
		Email:    "Maria@Example.com",
		State:    "sp",
	}
}

func TestNormalizeTaxID(t *testing.T) {
	assert.Equal(t, "12345678901", customer.NormalizeTaxID("123.456.789-01"))
	assert.Equal(t, "12345678000199", customer.NormalizeTaxID("12.345.678/0001-99"))
	assert.True(t, customer.ValidTaxID("12345678901"))
	assert.True(t, customer.ValidTaxID("12345678000199"))
	assert.False(t, customer.ValidTaxID("1234"))
}

func TestCustomerService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByTaxID(gomock.Any(), "12345678901").
			Return(&customer.Customer{ID: uuid.New(), FullName: "Maria Souza", TaxID: "12345678901"}, nil)

		resp, err := deps.service.Check(ctx, "123.456.789-01")

		require.NoError(t, err)
		assert.Equal(t, customer.CheckFound, resp.Status)
		require.NotNil(t, resp.Customer)
		assert.Equal(t, "Maria Souza", resp.Customer.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByTaxID(gomock.Any(), "12345678901").Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.Check(ctx, "12345678901")

		require.NoError(t, err)
		assert.Equal(t, customer.CheckNotFound, resp.Status)
		assert.Nil(t, resp.Customer)
	})

	t.Run("missing tax id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Check(ctx, " ")
		assert.ErrorIs(t, err, customererrors.ErrTaxIDRequired)
	})

	t.Run("wrong length", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Check(ctx, "123-45")
		assert.ErrorIs(t, err, customererrors.ErrInvalidTaxID)
	})
}

func TestCustomerService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unknown customer", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByTaxID(gomock.Any(), "12345678901").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, c *customer.Customer) error {
				assert.NotEqual(t, uuid.Nil, c.ID)
				assert.Equal(t, "Maria Souza", c.FullName)
				assert.Equal(t, "maria@example.com", c.Email)
				assert.Equal(t, "SP", c.State)
				return nil
			})

		c, err := deps.service.Upsert(ctx, nil, validInput())

		require.NoError(t, err)
		assert.Equal(t, "12345678901", c.TaxID)
	})

	t.Run("updates existing customer", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByTaxID(gomock.Any(), "12345678901").
			Return(&customer.Customer{ID: id, FullName: "Old", TaxID: "12345678901"}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		c, err := deps.service.Upsert(ctx, nil, validInput())

		require.NoError(t, err)
		assert.Equal(t, id, c.ID)
		assert.Equal(t, "Maria Souza", c.FullName)
	})

	t.Run("email taken by another customer", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByTaxID(gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&customErr{"UNIQUE constraint failed: customers.email"})

		_, err := deps.service.Upsert(ctx, nil, validInput())

		assert.ErrorIs(t, err, customererrors.ErrEmailAlreadyUsed)
	})
}

type customErr struct{ msg string }

func (e *customErr) Error() string { return e.msg }

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(&customer.Customer{ID: id}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, id.String(), validInput())

		require.NoError(t, err)
		assert.Equal(t, "12345678901", resp.TaxID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), validInput())

		assert.ErrorIs(t, err, customererrors.ErrCustomerNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Update(ctx, "nope", validInput())
		assert.ErrorIs(t, err, customererrors.ErrInvalidCustomerID)
	})
}
