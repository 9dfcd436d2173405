package audit_test

import (
	"context"
	"testing"
	"time"

	"go-commission/internal/audit"
	"go-commission/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLog(eventID, entityType, entityID string, at time.Time) *audit.AuditLog {
	return &audit.AuditLog{
		ID:         uuid.New(),
		EventID:    eventID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     "lot_closed",
		Payload:    `{}`,
		OccurredAt: at,
	}
}

func TestRepository_CreateIgnoresDuplicateEvent(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &audit.AuditLog{})
	repo := audit.NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	inserted, err := repo.Create(ctx, newLog("evt-1", "lot", "lot-1", now))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Create(ctx, newLog("evt-1", "lot", "lot-1", now))
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&audit.AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_ListFiltersAndOrders(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &audit.AuditLog{})
	repo := audit.NewRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, newLog("evt-1", "lot", "lot-1", base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newLog("evt-2", "lot", "lot-1", base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newLog("evt-3", "sale", "sale-1", base))
	require.NoError(t, err)

	logs, total, err := repo.List(ctx, audit.ListFilter{EntityType: "lot", EntityID: "lot-1", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, "evt-2", logs[0].EventID)

	logs, total, err = repo.List(ctx, audit.ListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 1)
}
