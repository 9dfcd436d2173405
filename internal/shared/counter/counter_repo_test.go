package counter_test

import (
	"context"
	"testing"

	"go-commission/internal/shared/counter"
	"go-commission/internal/shared/testutil"

	"github.com/stretchr/testify/require"
)

func TestRepository_GetNextValue(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &counter.Counter{})

	repo := counter.NewRepository(db)
	ctx := context.Background()

	first, err := repo.GetNextValue(ctx, "lot", "2026")
	require.NoError(t, err)
	second, err := repo.GetNextValue(ctx, "lot", "2026")
	require.NoError(t, err)
	other, err := repo.GetNextValue(ctx, "lot", "2027")
	require.NoError(t, err)

	require.Equal(t, int64(1), first)
	require.Equal(t, int64(2), second)
	require.Equal(t, int64(1), other)
}
