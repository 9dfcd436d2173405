package sale_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go-commission/internal/access"
	"go-commission/internal/commission"
	commissionMock "go-commission/internal/commission/mock"
	"go-commission/internal/customer"
	customerMock "go-commission/internal/customer/mock"
	"go-commission/internal/events"
	"go-commission/internal/messaging/kafka"
	kafkaMock "go-commission/internal/messaging/kafka/mock"
	"go-commission/internal/sale"
	saleerrors "go-commission/internal/sale/errors"
	saleMock "go-commission/internal/sale/mock"
	"go-commission/internal/shared/storage"
	storageMock "go-commission/internal/shared/storage/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	repo        *saleMock.MockRepository
	customers   *customerMock.MockService
	commissions *commissionMock.MockService
	files       *storageMock.MockFileStorage
	outbox      *kafkaMock.MockOutboxRepository
	service     sale.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		repo:        saleMock.NewMockRepository(ctrl),
		customers:   customerMock.NewMockService(ctrl),
		commissions: commissionMock.NewMockService(ctrl),
		files:       storageMock.NewMockFileStorage(ctrl),
		outbox:      kafkaMock.NewMockOutboxRepository(ctrl),
	}
	deps.service = sale.NewService(db, deps.repo, deps.customers, deps.commissions, deps.files, deps.outbox)
	return deps
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func actorWith(roles ...access.Role) access.Actor {
	return access.Actor{UserID: uuid.New(), Roles: access.NewRoleSet(roles...)}
}

// expectOutbox records the topics queued through the outbox.
func expectOutbox(deps *serviceDeps, topics *[]string) {
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox).AnyTimes()
	deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
			*topics = append(*topics, ev.Topic)
			return nil
		}).AnyTimes()
}

func expectDetail(deps *serviceDeps, s *sale.Sale) {
	deps.repo.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
}

func storedSale(sellerID uuid.UUID) *sale.Sale {
	return &sale.Sale{
		ID:               uuid.New(),
		SellerID:         sellerID,
		CustomerID:       uuid.New(),
		ProductID:        uuid.New(),
		TotalFee:         dec("3000"),
		DownPayment:      dec("1000"),
		InstallmentCount: 2,
		InstallmentValue: dec("500"),
		SuccessFee:       dec("1000"),
		SaleStatus:       sale.SaleNegotiating,
		PaymentStatus:    sale.PaymentPending,
		ContractStatus:   sale.ContractNotGenerated,
	}
}

func createRequest() sale.CreateSaleRequest {
	return sale.CreateSaleRequest{
		Customer:         customer.CustomerInput{TaxID: "123.456.789-01", FullName: "Maria", Email: "maria@example.com"},
		ProductID:        uuid.NewString(),
		SoldAt:           "2026-03-15",
		DownPayment:      dec("1000"),
		InstallmentCount: 3,
		InstallmentValue: dec("333.33"),
		SuccessFee:       dec("500"),
		Contribution:     dec("250"),
	}
}

func TestTotalFee(t *testing.T) {
	total := sale.TotalFee(dec("1000"), 3, dec("333.33"), dec("500"))
	assert.Equal(t, "2499.99", total.StringFixed(2))

	assert.True(t, sale.TotalFee(decimal.Zero, 0, decimal.Zero, decimal.Zero).IsZero())
}

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("receipts move payment to awaiting validation", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)
		var topics []string
		var created *sale.Sale

		deps.files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), int64(4), "image/png").
			DoAndReturn(func(ctx context.Context, key string, _ any, _ int64, _ string) error {
				assert.True(t, strings.HasPrefix(key, "sales/sale_"))
				assert.Contains(t, key, "/receipt/")
				assert.True(t, strings.HasSuffix(key, ".png"))
				return nil
			})
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ProductExists(gomock.Any(), gomock.Any()).Return(true, nil)
		deps.customers.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&customer.Customer{ID: uuid.New()}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *sale.Sale) error {
				created = s
				return nil
			})
		deps.repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).Return(nil)
		expectOutbox(deps, &topics)
		deps.repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
				return created, nil
			})

		resp, err := deps.service.Create(ctx, seller, createRequest(), []storage.Upload{
			{Filename: "pix.PNG", ContentType: "image/png", Size: 4, Content: strings.NewReader("data")},
		})

		require.NoError(t, err)
		assert.Equal(t, "2499.99", resp.TotalFee)
		assert.Equal(t, "250.00", resp.Contribution)
		assert.Equal(t, string(sale.PaymentAwaitingValidation), resp.PaymentStatus)
		assert.Equal(t, string(sale.ContractNotGenerated), resp.ContractStatus)
		assert.Equal(t, seller.UserID.String(), resp.SellerID)
		assert.Nil(t, resp.FinalCommission)
		assert.Equal(t, []string{events.SaleLifecycleTopic}, topics)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := createRequest()
		req.SuccessFee = dec("-0.01")

		_, err := deps.service.Create(ctx, actorWith(access.RoleSeller), req, nil)

		assert.ErrorIs(t, err, saleerrors.ErrNegativeAmount)
	})

	t.Run("negative installment count", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := createRequest()
		req.InstallmentCount = -1

		_, err := deps.service.Create(ctx, actorWith(access.RoleSeller), req, nil)

		assert.ErrorIs(t, err, saleerrors.ErrNegativeAmount)
	})

	t.Run("stored files are removed when the transaction fails", func(t *testing.T) {
		deps := setupServiceTest(t)
		var savedKey string

		deps.files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, key string, _ any, _ int64, _ string) error {
				savedKey = key
				return nil
			})
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ProductExists(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.files.EXPECT().Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, key string) error {
				assert.Equal(t, savedKey, key)
				return nil
			})

		_, err := deps.service.Create(ctx, actorWith(access.RoleSeller), createRequest(), []storage.Upload{
			{Filename: "a.pdf", Size: 1, Content: strings.NewReader("x")},
		})

		assert.ErrorIs(t, err, saleerrors.ErrProductNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSaleService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	approved := string(sale.PaymentApproved)

	t.Run("approval resolves commission in the same transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		finance := actorWith(access.RoleFinance)
		s := storedSale(uuid.New())
		var topics []string

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.commissions.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), commission.Terms{
				SellerID: s.SellerID, ProductID: s.ProductID, TotalFee: s.TotalFee,
			}).
			Return(commission.Resolution{Amount: dec("300"), Source: commission.SourceProduct}, nil)
		deps.repo.EXPECT().UpdateCommission(gomock.Any(), s.ID, dec("300"), "product").Return(nil)
		expectOutbox(deps, &topics)
		expectDetail(deps, s)

		resp, err := deps.service.UpdateStatus(ctx, finance, s.ID.String(), sale.UpdateStatusRequest{PaymentStatus: &approved})

		require.NoError(t, err)
		require.NotNil(t, resp.FinalCommission)
		assert.Equal(t, "300.00", *resp.FinalCommission)
		assert.Equal(t, "product", *resp.CommissionSource)
		assert.Equal(t, []string{events.CommissionResolvedTopic, events.SaleLifecycleTopic}, topics)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already approved does not resolve again", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())
		s.PaymentStatus = sale.PaymentApproved
		var topics []string

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		expectOutbox(deps, &topics)
		expectDetail(deps, s)

		_, err := deps.service.UpdateStatus(ctx, actorWith(access.RoleManager), s.ID.String(), sale.UpdateStatusRequest{PaymentStatus: &approved})

		require.NoError(t, err)
		assert.Equal(t, []string{events.SaleLifecycleTopic}, topics)
	})

	t.Run("finance cannot change contract", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())
		signed := string(sale.ContractSigned)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)

		_, err := deps.service.UpdateStatus(ctx, actorWith(access.RoleFinance), s.ID.String(), sale.UpdateStatusRequest{ContractStatus: &signed})

		assert.ErrorIs(t, err, saleerrors.ErrStatusNotAllowed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("seller loses the sale track once the contract exists", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)
		s := storedSale(seller.UserID)
		s.ContractStatus = sale.ContractGenerated
		completed := string(sale.SaleCompleted)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)

		_, err := deps.service.UpdateStatus(ctx, seller, s.ID.String(), sale.UpdateStatusRequest{SaleStatus: &completed})

		assert.ErrorIs(t, err, saleerrors.ErrStatusNotAllowed)
	})

	t.Run("other seller's sale is not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())
		lost := string(sale.SaleLost)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)

		_, err := deps.service.UpdateStatus(ctx, actorWith(access.RoleSeller), s.ID.String(), sale.UpdateStatusRequest{SaleStatus: &lost})

		assert.ErrorIs(t, err, saleerrors.ErrSaleNotFound)
	})

	t.Run("resolver failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.commissions.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(commission.Resolution{}, errors.New("db down"))

		_, err := deps.service.UpdateStatus(ctx, actorWith(access.RoleAdmin), s.ID.String(), sale.UpdateStatusRequest{PaymentStatus: &approved})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty request", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.UpdateStatus(ctx, actorWith(access.RoleAdmin), uuid.NewString(), sale.UpdateStatusRequest{})
		assert.ErrorIs(t, err, saleerrors.ErrNoStatusChange)
	})
}

func updateRequest(s *sale.Sale) sale.UpdateSaleRequest {
	return sale.UpdateSaleRequest{
		ProductID:        s.ProductID.String(),
		DownPayment:      dec("2000"),
		InstallmentCount: 2,
		InstallmentValue: dec("500"),
		SuccessFee:       dec("1000"),
	}
}

func TestSaleService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("seller cannot set manual commission", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)
		s := storedSale(seller.UserID)
		req := updateRequest(s)
		manual := dec("10")
		req.ManualCommission = &manual

		_, err := deps.service.Update(ctx, seller, s.ID.String(), req)

		assert.ErrorIs(t, err, saleerrors.ErrManualCommissionNotAllowed)
	})

	t.Run("manager edit of approved sale recomputes with override", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())
		s.PaymentStatus = sale.PaymentApproved
		s.FinalCommission = decimalPtr(dec("300"))
		req := updateRequest(s)
		manual := dec("450.555")
		req.ManualCommission = &manual
		var topics []string

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, updated *sale.Sale) error {
				assert.Equal(t, "4000.00", updated.TotalFee.StringFixed(2))
				assert.Equal(t, "450.56", updated.ManualCommission.StringFixed(2))
				return nil
			})
		deps.commissions.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ *sql.Tx, terms commission.Terms) (commission.Resolution, error) {
				require.NotNil(t, terms.Manual)
				return commission.Resolution{Amount: *terms.Manual, Source: commission.SourceManual}, nil
			})
		deps.repo.EXPECT().UpdateCommission(gomock.Any(), s.ID, dec("450.56"), "manual").Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox).AnyTimes()
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				topics = append(topics, ev.Topic)
				if ev.Topic == events.CommissionResolvedTopic {
					var payload events.CommissionResolvedEvent
					require.NoError(t, json.Unmarshal(ev.Payload, &payload))
					assert.Equal(t, "300.00", payload.Previous)
					assert.Equal(t, "450.56", payload.Amount)
				}
				return nil
			}).Times(2)
		expectDetail(deps, s)

		_, err := deps.service.Update(ctx, actorWith(access.RoleManager), s.ID.String(), req)

		require.NoError(t, err)
		assert.Equal(t, []string{events.CommissionResolvedTopic, events.SaleLifecycleTopic}, topics)
	})

	t.Run("seller cannot edit once contract is generated", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)
		s := storedSale(seller.UserID)
		s.ContractStatus = sale.ContractGenerated

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)

		_, err := deps.service.Update(ctx, seller, s.ID.String(), updateRequest(s))

		assert.ErrorIs(t, err, saleerrors.ErrEditNotAllowed)
	})
}

func TestSaleService_UpdateCustomerRecomputesWhenApproved(t *testing.T) {
	deps := setupServiceTest(t)
	s := storedSale(uuid.New())
	s.PaymentStatus = sale.PaymentApproved
	var topics []string

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)
	deps.customers.EXPECT().Apply(gomock.Any(), gomock.Any(), s.CustomerID, gomock.Any()).
		Return(&customer.Customer{ID: s.CustomerID}, nil)
	deps.commissions.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(commission.Resolution{Amount: dec("120"), Source: commission.SourceException}, nil)
	deps.repo.EXPECT().UpdateCommission(gomock.Any(), s.ID, dec("120"), "exception").Return(nil)
	expectOutbox(deps, &topics)
	expectDetail(deps, s)

	_, err := deps.service.UpdateCustomer(context.Background(), actorWith(access.RoleAdmin), s.ID.String(),
		customer.CustomerInput{TaxID: "12345678901", FullName: "Maria", Email: "m@example.com"})

	require.NoError(t, err)
	assert.Contains(t, topics, events.CommissionResolvedTopic)
}

func TestSaleService_Attachments(t *testing.T) {
	ctx := context.Background()

	t.Run("seller cannot delete receipt after approval", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)
		s := storedSale(seller.UserID)
		s.PaymentStatus = sale.PaymentApproved
		att := &sale.Attachment{ID: uuid.New(), SaleID: s.ID, Kind: sale.AttachmentReceipt, FileKey: "k"}

		deps.repo.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().FindAttachment(gomock.Any(), s.ID, att.ID).Return(att, nil)

		err := deps.service.DeleteAttachment(ctx, seller, s.ID.String(), att.ID.String())

		assert.ErrorIs(t, err, saleerrors.ErrDeleteAttachmentNotAllowed)
	})

	t.Run("finance deletes invoice and the stored file", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())
		s.PaymentStatus = sale.PaymentApproved
		att := &sale.Attachment{ID: uuid.New(), SaleID: s.ID, Kind: sale.AttachmentInvoice, FileKey: "sales/x/invoice/a.pdf"}

		deps.repo.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().FindAttachment(gomock.Any(), s.ID, att.ID).Return(att, nil)
		deps.repo.EXPECT().DeleteAttachment(gomock.Any(), att.ID).Return(nil)
		deps.files.EXPECT().Delete(gomock.Any(), att.FileKey).Return(nil)

		err := deps.service.DeleteAttachment(ctx, actorWith(access.RoleFinance), s.ID.String(), att.ID.String())

		assert.NoError(t, err)
	})

	t.Run("lawyer cannot upload receipts", func(t *testing.T) {
		deps := setupServiceTest(t)
		s := storedSale(uuid.New())
		deps.repo.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)

		_, err := deps.service.UploadAttachment(ctx, actorWith(access.RoleLawyer), s.ID.String(), "receipt",
			storage.Upload{Filename: "r.pdf", Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, saleerrors.ErrUploadNotAllowed)
	})

	t.Run("receipt upload on pending sale asks for validation", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)
		s := storedSale(seller.UserID)

		deps.repo.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
		deps.files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).Return(nil)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), s.ID).Return(s, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, updated *sale.Sale) error {
				assert.Equal(t, sale.PaymentAwaitingValidation, updated.PaymentStatus)
				return nil
			})
		deps.files.EXPECT().URL(gomock.Any(), gomock.Any()).Return("http://files/r.pdf", nil)

		resp, err := deps.service.UploadAttachment(ctx, seller, s.ID.String(), "receipt",
			storage.Upload{Filename: "r.pdf", Size: 1, Content: strings.NewReader("x")})

		require.NoError(t, err)
		assert.Equal(t, "receipt", resp.Kind)
		assert.Equal(t, "http://files/r.pdf", resp.URL)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown kind", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.UploadAttachment(ctx, actorWith(access.RoleAdmin), uuid.NewString(), "selfie",
			storage.Upload{Content: strings.NewReader("x")})
		assert.ErrorIs(t, err, saleerrors.ErrInvalidAttachmentKind)
	})
}

func TestSaleService_GetAllScopesSellers(t *testing.T) {
	deps := setupServiceTest(t)
	seller := actorWith(access.RoleSeller)

	deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, q sale.Query) ([]sale.Sale, error) {
			require.NotNil(t, q.SellerID)
			assert.Equal(t, seller.UserID, *q.SellerID)
			require.NotNil(t, q.To)
			assert.Equal(t, 16, q.To.Day())
			return nil, nil
		})

	_, err := deps.service.GetAll(context.Background(), seller, sale.ListSalesFilter{
		SellerID: uuid.NewString(),
		EndDate:  "2026-03-15",
	})

	require.NoError(t, err)
}

func TestSaleService_GetAllRejectsInvertedRange(t *testing.T) {
	deps := setupServiceTest(t)

	_, err := deps.service.GetAll(context.Background(), actorWith(access.RoleAdmin), sale.ListSalesFilter{
		StartDate: "2026-03-15",
		EndDate:   "2026-03-01",
	})

	assert.ErrorIs(t, err, saleerrors.ErrInvalidDateRange)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
