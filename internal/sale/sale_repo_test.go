package sale_test

import (
	"context"
	"testing"
	"time"

	"go-commission/internal/customer"
	"go-commission/internal/product"
	"go-commission/internal/sale"
	"go-commission/internal/shared/testutil"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	repo    sale.Repository
	sellerA user.User
	sellerB user.User
	maria   customer.Customer
	joao    customer.Customer
	product product.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t,
		&user.User{}, &user.UserRole{}, &user.Team{}, &user.TeamMember{},
		&customer.Customer{}, &product.Product{}, &sale.Sale{}, &sale.Attachment{},
	)
	f := &fixture{
		db:      db,
		repo:    sale.NewRepository(db),
		sellerA: user.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Password: "x", IsActive: true},
		sellerB: user.User{ID: uuid.New(), Name: "Bruno", Email: "bruno@example.com", Password: "x", IsActive: true},
		maria:   customer.Customer{ID: uuid.New(), FullName: "Maria Souza", Email: "maria@example.com", TaxID: "12345678901"},
		joao:    customer.Customer{ID: uuid.New(), FullName: "Joao Lima", Email: "joao@example.com", TaxID: "10987654321"},
		product: product.Product{ID: uuid.New(), Name: "Revisional", CommissionKind: product.KindPercentage, IsActive: true},
	}
	require.NoError(t, db.Create(&f.sellerA).Error)
	require.NoError(t, db.Create(&f.sellerB).Error)
	require.NoError(t, db.Create(&f.maria).Error)
	require.NoError(t, db.Create(&f.joao).Error)
	require.NoError(t, db.Create(&f.product).Error)
	return f
}

func (f *fixture) addSale(t *testing.T, seller user.User, c customer.Customer, soldAt time.Time, payment sale.PaymentStatus) *sale.Sale {
	t.Helper()
	s := &sale.Sale{
		ID:             uuid.New(),
		SellerID:       seller.ID,
		CustomerID:     c.ID,
		ProductID:      f.product.ID,
		SoldAt:         soldAt,
		TotalFee:       dec("1000"),
		DownPayment:    dec("1000"),
		SaleStatus:     sale.SaleStarted,
		PaymentStatus:  payment,
		ContractStatus: sale.ContractNotGenerated,
	}
	require.NoError(t, f.repo.Create(context.Background(), s))
	return s
}

func TestRepository_FindAllFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	loc := time.UTC

	f.addSale(t, f.sellerA, f.maria, time.Date(2026, 3, 1, 10, 0, 0, 0, loc), sale.PaymentApproved)
	f.addSale(t, f.sellerA, f.joao, time.Date(2026, 3, 31, 23, 30, 0, 0, loc), sale.PaymentPending)
	f.addSale(t, f.sellerB, f.maria, time.Date(2026, 4, 1, 0, 0, 0, 0, loc), sale.PaymentApproved)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, loc)

	march, err := f.repo.FindAll(ctx, sale.Query{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, march, 2)
	require.NotNil(t, march[0].Seller)
	assert.Equal(t, "Ana", march[0].Seller.Name)
	require.NotNil(t, march[0].Customer)

	byCustomer, err := f.repo.FindAll(ctx, sale.Query{CustomerName: "souza"})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	approvedA, err := f.repo.FindAll(ctx, sale.Query{SellerID: &f.sellerA.ID, PaymentStatus: sale.PaymentApproved})
	require.NoError(t, err)
	require.Len(t, approvedA, 1)
	assert.Equal(t, f.maria.ID, approvedA[0].CustomerID)
}

func TestRepository_CommissionAndAttachments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.addSale(t, f.sellerA, f.maria, time.Now(), sale.PaymentApproved)

	require.NoError(t, f.repo.UpdateCommission(ctx, s.ID, dec("123.45"), "product"))

	att := &sale.Attachment{ID: uuid.New(), SaleID: s.ID, Kind: sale.AttachmentReceipt, FileKey: "sales/k.pdf", FileName: "k.pdf"}
	require.NoError(t, f.repo.CreateAttachment(ctx, att))

	got, err := f.repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FinalCommission)
	assert.Equal(t, "123.45", got.FinalCommission.StringFixed(2))
	assert.Equal(t, "product", *got.CommissionSource)
	require.Len(t, got.Attachments, 1)

	_, err = f.repo.FindAttachment(ctx, uuid.New(), att.ID)
	assert.Error(t, err)

	require.NoError(t, f.repo.DeleteAttachment(ctx, att.ID))
	assert.Error(t, f.repo.DeleteAttachment(ctx, att.ID))

	ok, err := f.repo.ProductExists(ctx, f.product.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
