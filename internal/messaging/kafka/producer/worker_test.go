package producer

import (
	"context"
	"errors"
	"testing"

	"go-commission/internal/events"
	"go-commission/internal/messaging/kafka"
	"go-commission/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failTopic: events.LotDeletedTopic}
	ctx := context.Background()

	pending := []kafka.OutboxEvent{
		{ID: "evt-1", AggregateType: "lot", AggregateID: "lot-1", EventType: events.EventLotClosed, Topic: events.LotClosedTopic, Payload: []byte(`{}`)},
		{ID: "evt-2", AggregateType: "lot", AggregateID: "lot-2", EventType: events.EventLotDeleted, Topic: events.LotDeletedTopic, Payload: []byte(`{}`)},
	}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pending, nil)
	repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "evt-2", "broker unavailable").Return(nil)

	sent, err := processPendingEvents(ctx, repo, writer, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, writer.written, 1)
	msg := writer.written[0]
	assert.Equal(t, []byte("lot-1"), msg.Key)
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_id", Value: []byte("evt-1")})
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "aggregate_type", Value: []byte("lot")})
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

	_, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
	assert.Error(t, err)
}
