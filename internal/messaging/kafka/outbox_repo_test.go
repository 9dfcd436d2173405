package kafka

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"go-commission/internal/events"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	meta := events.NewMeta(events.EventLotClosed, "rid-1", "user-1")
	event, err := NewOutboxEvent(meta, "lot", "lot-1", events.LotClosedTopic, events.LotClosedEvent{
		Meta:  meta,
		LotID: "lot-1",
	})
	require.NoError(t, err)

	assert.Equal(t, meta.EventID, event.ID)
	assert.Equal(t, "rid-1", event.RequestID)
	assert.Equal(t, events.EventLotClosed, event.EventType)
	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.Contains(t, string(event.Payload), `"lot_id":"lot-1"`)
	assert.NoError(t, event.Validate())
}

func TestOutboxEvent_Validate(t *testing.T) {
	valid := OutboxEvent{ID: "1", AggregateID: "lot-1", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending}
	assert.NoError(t, valid.Validate())

	missingTopic := valid
	missingTopic.Topic = ""
	assert.Error(t, missingTopic.Validate())

	missingAggregate := valid
	missingAggregate.AggregateID = ""
	assert.Error(t, missingAggregate.Validate())

	alreadySent := valid
	alreadySent.Status = OutboxStatusSent
	assert.Error(t, alreadySent.Validate())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "çã", truncate("çãé", 2))
}

func TestOutboxRepository_CreateWithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := OutboxEvent{
		ID:            "evt-1",
		RequestID:     "rid-1",
		AggregateType: "lot",
		AggregateID:   "lot-1",
		EventType:     events.EventLotClosed,
		Topic:         events.LotClosedTopic,
		Payload:       []byte(`{}`),
		Status:        OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID,
			event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOutboxRepository(db).WithTx(tx)
	require.NoError(t, repo.Create(context.Background(), event))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewOutboxRepository(db).Create(context.Background(), OutboxEvent{ID: "1"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("evt-1", "rid-1", "sale", "sale-1", events.EventCommissionResolved,
		events.CommissionResolvedTopic, []byte(`{}`), OutboxStatusFailed, 2, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	got, err := NewOutboxRepository(db).ListPending(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "evt-1", got[0].ID)
	assert.Equal(t, 2, got[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-1", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-2", OutboxStatusFailed, OutboxStatusDead, MaxOutboxAttempts, "broker down").
		WillReturnResult(driver.RowsAffected(1))

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	require.NoError(t, repo.MarkFailed(context.Background(), "evt-2", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
