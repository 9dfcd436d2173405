package lot_test

import (
	"context"
	"testing"
	"time"

	"go-commission/internal/customer"
	"go-commission/internal/lot"
	"go-commission/internal/product"
	"go-commission/internal/sale"
	"go-commission/internal/shared/money"
	"go-commission/internal/shared/testutil"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLiteDB(t,
		&user.User{}, &user.UserRole{}, &user.Team{}, &user.TeamMember{},
		&customer.Customer{}, &product.Product{},
		&sale.Sale{}, &sale.Attachment{},
		&lot.Lot{}, &lot.PaymentTransaction{}, &lot.Attachment{},
	)
}

func insertSale(t *testing.T, db *gorm.DB, sellerID uuid.UUID, soldAt time.Time, status sale.PaymentStatus, commission string) sale.Sale {
	t.Helper()
	s := sale.Sale{
		ID:             uuid.New(),
		SellerID:       sellerID,
		CustomerID:     uuid.New(),
		ProductID:      uuid.New(),
		SoldAt:         soldAt,
		TotalFee:       dec("1000"),
		SaleStatus:     sale.SaleCompleted,
		PaymentStatus:  status,
		ContractStatus: sale.ContractSigned,
	}
	if commission != "" {
		s.FinalCommission = money.Ptr(dec(commission))
	}
	require.NoError(t, db.Omit("Seller", "Customer", "Product", "Attachments").Create(&s).Error)
	return s
}

func TestRepository_EligibleSalesAndAssignment(t *testing.T) {
	db := newRepoDB(t)
	repo := lot.NewRepository(db)
	ctx := context.Background()

	ana := user.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Password: "x", IsActive: true}
	bia := user.User{ID: uuid.New(), Name: "Bia", Email: "bia@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&ana).Error)
	require.NoError(t, db.Create(&bia).Error)

	day := func(d int) time.Time { return time.Date(2026, 3, d, 15, 0, 0, 0, time.UTC) }
	first := insertSale(t, db, ana.ID, day(1), sale.PaymentApproved, "100")
	last := insertSale(t, db, ana.ID, day(31), sale.PaymentApproved, "50")
	insertSale(t, db, ana.ID, day(10), sale.PaymentPending, "70")
	insertSale(t, db, bia.ID, day(12), sale.PaymentApproved, "30")
	insertSale(t, db, ana.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), sale.PaymentApproved, "10")

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	all, err := repo.FindEligibleSales(ctx, lot.EligibleQuery{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	require.NotNil(t, all[0].Seller)

	onlyAna := lot.EligibleQuery{SellerID: &ana.ID, From: &from, To: &to}
	locked, err := repo.LockEligibleSales(ctx, onlyAna)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, first.ID, locked[0].ID)
	assert.Equal(t, last.ID, locked[1].ID)

	l := &lot.Lot{
		ID:        uuid.New(),
		Code:      lot.FormatCode(2026, 1),
		SellerID:  ana.ID,
		StartDate: from,
		EndDate:   day(31),
		ClosedBy:  bia.ID,
		ClosedAt:  time.Now().UTC(),
		Status:    lot.StatusPending,
		TotalDue:  dec("150"),
		TotalPaid: decimal.Zero,
	}
	require.NoError(t, repo.Create(ctx, l))

	n, err := repo.AssignSales(ctx, l.ID, []uuid.UUID{first.ID, last.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	again, err := repo.AssignSales(ctx, uuid.New(), []uuid.UUID{first.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), again)

	remaining, err := repo.FindEligibleSales(ctx, onlyAna)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	inLot, err := repo.FindSales(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, inLot, 2)

	released, err := repo.ReleaseSales(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)

	remaining, err = repo.FindEligibleSales(ctx, onlyAna)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestRepository_PaymentsAndTotals(t *testing.T) {
	db := newRepoDB(t)
	repo := lot.NewRepository(db)
	ctx := context.Background()

	seller := uuid.New()
	l := &lot.Lot{
		ID:        uuid.New(),
		Code:      lot.FormatCode(2026, 2),
		SellerID:  seller,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		ClosedBy:  uuid.New(),
		ClosedAt:  time.Now().UTC(),
		Status:    lot.StatusPending,
		TotalDue:  dec("150.50"),
		TotalPaid: decimal.Zero,
	}
	require.NoError(t, repo.Create(ctx, l))

	empty, err := repo.SumPayments(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	now := time.Now().UTC()
	require.NoError(t, repo.CreatePayment(ctx, &lot.PaymentTransaction{ID: uuid.New(), LotID: l.ID, Amount: dec("100.25"), PaidAt: now, RecordedBy: seller}))
	require.NoError(t, repo.CreatePayment(ctx, &lot.PaymentTransaction{ID: uuid.New(), LotID: l.ID, Amount: dec("50.25"), PaidAt: now.Add(time.Minute), RecordedBy: seller}))
	require.NoError(t, repo.CreateAttachment(ctx, &lot.Attachment{ID: uuid.New(), LotID: l.ID, FileKey: "k", FileName: "nf.pdf", UploadedBy: seller}))

	total, err := repo.SumPayments(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.50", total.StringFixed(2))

	status := lot.DeriveStatus(total, l.TotalDue)
	require.NoError(t, repo.UpdateTotals(ctx, l.ID, total, status))

	got, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, lot.StatusFullyPaid, got.Status)
	assert.Equal(t, "150.50", got.TotalPaid.StringFixed(2))
	require.Len(t, got.Payments, 2)
	assert.Equal(t, "100.25", got.Payments[0].Amount.StringFixed(2))
	assert.Len(t, got.Attachments, 1)

	paid, err := repo.FindAll(ctx, lot.Query{Status: lot.StatusFullyPaid})
	require.NoError(t, err)
	assert.Len(t, paid, 1)
	other := uuid.New()
	none, err := repo.FindAll(ctx, lot.Query{SellerID: &other})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, repo.DeletePayments(ctx, l.ID))
	require.NoError(t, repo.DeleteAttachments(ctx, l.ID))
	require.NoError(t, repo.Delete(ctx, l.ID))
	assert.ErrorIs(t, repo.Delete(ctx, l.ID), gorm.ErrRecordNotFound)
}
