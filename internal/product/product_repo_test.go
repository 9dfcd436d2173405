package product_test

import (
	"context"
	"testing"

	"go-commission/internal/product"
	"go-commission/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FindAllAndOptions(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &product.Product{})
	repo := product.NewRepository(db)
	ctx := context.Background()

	for _, p := range []product.Product{
		{ID: uuid.New(), Name: "Revisional", CommissionKind: product.KindPercentage, CommissionValue: decimal.NewFromInt(10), IsActive: true},
		{ID: uuid.New(), Name: "Aposentadoria", CommissionKind: product.KindFixed, CommissionValue: decimal.NewFromInt(150), IsActive: true},
		{ID: uuid.New(), Name: "Revisao FGTS", CommissionKind: product.KindFixed, IsActive: true},
	} {
		p := p
		require.NoError(t, repo.Create(ctx, &p))
	}

	var inactive product.Product
	require.NoError(t, db.Where("name = ?", "Revisao FGTS").First(&inactive).Error)
	inactive.IsActive = false
	require.NoError(t, repo.Update(ctx, &inactive))

	found, err := repo.FindAll(ctx, product.ListProductsFilter{Search: "revis"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	options, err := repo.FindOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Aposentadoria", options[0].Name)
	assert.Equal(t, "Revisional", options[1].Name)

	got, err := repo.FindByID(ctx, options[0].ID)
	require.NoError(t, err)
	assert.True(t, got.CommissionValue.Equal(decimal.NewFromInt(150)))
}

func TestRepository_DeleteMissing(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &product.Product{})
	repo := product.NewRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.Error(t, err)
}
