package customer_test

import (
	"context"
	"testing"

	"go-commission/internal/customer"
	"go-commission/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepository_SearchAndTaxID(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &customer.Customer{})
	repo := customer.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &customer.Customer{ID: uuid.New(), FullName: "Maria Souza", Email: "maria@example.com", TaxID: "12345678901"}))
	require.NoError(t, repo.Create(ctx, &customer.Customer{ID: uuid.New(), FullName: "Joao Lima", Email: "joao@example.com", TaxID: "12345678000199"}))

	found, err := repo.FindAll(ctx, customer.ListCustomersFilter{Search: "SOUZA"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "maria@example.com", found[0].Email)

	byTax, err := repo.FindAll(ctx, customer.ListCustomersFilter{Search: "12.345.678/0001"})
	require.NoError(t, err)
	require.Len(t, byTax, 1)
	assert.Equal(t, "Joao Lima", byTax[0].FullName)

	c, err := repo.FindByTaxID(ctx, "12345678000199")
	require.NoError(t, err)
	assert.Equal(t, "Joao Lima", c.FullName)
}

func TestRepository_SearchWithoutDigits(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &customer.Customer{})
	repo := customer.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &customer.Customer{ID: uuid.New(), FullName: "Maria Souza", Email: "maria@example.com", TaxID: "12345678901"}))
	require.NoError(t, repo.Create(ctx, &customer.Customer{ID: uuid.New(), FullName: "Joao Lima", Email: "joao@example.com", TaxID: "12345678000199"}))

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "name only", search: "lima", want: []string{"Joao Lima"}},
		{name: "email fragment", search: "maria@", want: []string{"Maria Souza"}},
		{name: "punctuation only", search: "./-", want: nil},
		{name: "no match", search: "pereira", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindAll(ctx, customer.ListCustomersFilter{Search: tt.search})
			require.NoError(t, err)

			var names []string
			for _, c := range found {
				names = append(names, c.FullName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestService_UpsertAgainstSQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &customer.Customer{})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	svc := customer.NewService(sqlDB, customer.NewRepository(db), zap.NewNop())
	ctx := context.Background()

	in := validInput()
	first, err := svc.Upsert(ctx, nil, in)
	require.NoError(t, err)

	in.FullName = "Maria S. Souza"
	second, err := svc.Upsert(ctx, nil, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&customer.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := svc.GetByID(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Maria S. Souza", got.FullName)
}
