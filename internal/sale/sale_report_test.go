package sale_test

import (
	"context"
	"testing"
	"time"

	"go-commission/internal/access"
	"go-commission/internal/product"
	"go-commission/internal/sale"
	saleerrors "go-commission/internal/sale/errors"
	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func approvedSale(seller *user.User, prod *product.Product, soldAt time.Time, commission string) sale.Sale {
	s := storedSale(seller.ID)
	s.ProductID = prod.ID
	s.Seller = seller
	s.Product = prod
	s.SoldAt = soldAt
	s.PaymentStatus = sale.PaymentApproved
	if commission != "" {
		s.FinalCommission = decimalPtr(dec(commission))
	}
	return *s
}

func TestSaleService_Summary(t *testing.T) {
	deps := setupServiceTest(t)
	ana := &user.User{ID: uuid.New(), Name: "Ana"}
	bruno := &user.User{ID: uuid.New(), Name: "Bruno"}
	prod := &product.Product{ID: uuid.New(), Name: "Revisional"}

	first := approvedSale(ana, prod, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), "")
	second := approvedSale(bruno, prod, time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC), "")
	second.TotalFee = dec("1000")

	deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]sale.Sale{first, second}, nil)

	resp, err := deps.service.Summary(context.Background(), actorWith(access.RoleManager), sale.ListSalesFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "4000.00", resp.TotalFee)
	assert.Equal(t, "2000.00", resp.AverageTicket)
	require.Len(t, resp.BySeller, 2)
	assert.Equal(t, "Ana", resp.BySeller[0].Label)
	require.Len(t, resp.ByMonth, 2)
	assert.Equal(t, "2026-03", resp.ByMonth[0].Key)
}

func TestSaleService_CommissionSummary(t *testing.T) {
	ctx := context.Background()
	ana := &user.User{ID: uuid.New(), Name: "Ana"}
	bruno := &user.User{ID: uuid.New(), Name: "Bruno"}
	revisional := &product.Product{ID: uuid.New(), Name: "Revisional"}
	consortium := &product.Product{ID: uuid.New(), Name: "Consortium"}
	march := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 12, 15, 0, 0, 0, time.UTC)

	t.Run("aggregates approved sales matching the filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		sales := []sale.Sale{
			approvedSale(ana, revisional, march, "300.00"),
			approvedSale(ana, consortium, april, "150.00"),
			approvedSale(bruno, revisional, april, "100.00"),
			approvedSale(bruno, revisional, april, ""),
		}

		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q sale.Query) ([]sale.Sale, error) {
				assert.Equal(t, sale.PaymentApproved, q.PaymentStatus)
				require.NotNil(t, q.ProductID)
				assert.Nil(t, q.SellerID)
				return sales, nil
			})

		resp, err := deps.service.CommissionSummary(ctx, actorWith(access.RoleFinance), sale.ListSalesFilter{
			ProductID: uuid.NewString(),
		})
		require.NoError(t, err)

		assert.Equal(t, 4, resp.Count)
		assert.Equal(t, "550.00", resp.Total)
		assert.Equal(t, "183.33", resp.Average)

		require.Len(t, resp.BySeller, 2)
		assert.Equal(t, sale.CommissionBreakdown{Key: ana.ID.String(), Label: "Ana", Count: 2, Total: "450.00", Average: "225.00"}, resp.BySeller[0])
		assert.Equal(t, sale.CommissionBreakdown{Key: bruno.ID.String(), Label: "Bruno", Count: 2, Total: "100.00", Average: "100.00"}, resp.BySeller[1])

		require.Len(t, resp.ByProduct, 2)
		assert.Equal(t, "Revisional", resp.ByProduct[0].Label)
		assert.Equal(t, "400.00", resp.ByProduct[0].Total)
		assert.Equal(t, "Consortium", resp.ByProduct[1].Label)

		require.Len(t, resp.ByMonth, 2)
		assert.Equal(t, "2026-03", resp.ByMonth[0].Key)
		assert.Equal(t, "300.00", resp.ByMonth[0].Total)
		assert.Equal(t, "2026-04", resp.ByMonth[1].Key)
		assert.Equal(t, 3, resp.ByMonth[1].Count)
		assert.Equal(t, "250.00", resp.ByMonth[1].Total)
	})

	t.Run("sellers only see their own commissions", func(t *testing.T) {
		deps := setupServiceTest(t)
		seller := actorWith(access.RoleSeller)

		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q sale.Query) ([]sale.Sale, error) {
				require.NotNil(t, q.SellerID)
				assert.Equal(t, seller.UserID, *q.SellerID)
				return nil, nil
			})

		resp, err := deps.service.CommissionSummary(ctx, seller, sale.ListSalesFilter{SellerID: ana.ID.String()})
		require.NoError(t, err)
		assert.Zero(t, resp.Count)
		assert.Equal(t, "0.00", resp.Total)
		assert.Equal(t, "0.00", resp.Average)
		assert.Empty(t, resp.BySeller)
	})

	t.Run("other payment status matches nothing", func(t *testing.T) {
		deps := setupServiceTest(t)

		resp, err := deps.service.CommissionSummary(ctx, actorWith(access.RoleManager), sale.ListSalesFilter{PaymentStatus: "pending"})
		require.NoError(t, err)
		assert.Zero(t, resp.Count)
		assert.Empty(t, resp.ByMonth)
	})

	t.Run("lawyers cannot view commission figures", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.CommissionSummary(ctx, actorWith(access.RoleLawyer), sale.ListSalesFilter{})
		assert.ErrorIs(t, err, saleerrors.ErrCommissionSummaryNotAllowed)
	})

	t.Run("invalid range", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.CommissionSummary(ctx, actorWith(access.RoleAdmin), sale.ListSalesFilter{
			StartDate: "2026-03-15",
			EndDate:   "2026-03-01",
		})
		assert.ErrorIs(t, err, saleerrors.ErrInvalidDateRange)
	})
}
