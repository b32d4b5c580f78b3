package producer

import (
	"context"
	"errors"
	"testing"

	"elec-payroll/internal/messaging/kafka"
	kafkaMock "elec-payroll/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	failOn string
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failOn {
			return errors.New("broker unavailable")
		}
		w.msgs = append(w.msgs, m)
	}
	return nil
}

func TestPublishPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().
		ListPending(gomock.Any(), DefaultBatchSize).
		Return([]kafka.OutboxEvent{
			{ID: "o1", RequestID: "rid-1", AggregateID: "exp-1", EventType: "payroll_export_created", Topic: "t", Payload: []byte("{}")},
			{ID: "o2", AggregateID: "exp-2", EventType: "payroll_export_created", Topic: "t", Payload: []byte("{}")},
		}, nil)
	repo.EXPECT().MarkSent(gomock.Any(), "o1").Return(nil).Times(1)
	repo.EXPECT().MarkFailed(gomock.Any(), "o2", "broker unavailable").Return(nil).Times(1)
	writer := &fakeWriter{failOn: "exp-2"}

	sent, err := PublishPending(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	assert.Equal(t, "exp-1", string(msg.Key))
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
}

func TestToMessage_OmitsEmptyRequestID(t *testing.T) {
	msg := toMessage(kafka.OutboxEvent{ID: "o1", AggregateID: "a", Topic: "t"})

	for _, h := range msg.Headers {
		assert.NotEqual(t, "request_id", h.Key)
	}
}

func TestPublishPending_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), DefaultBatchSize).Return(nil, nil)

	sent, err := PublishPending(context.Background(), repo, &fakeWriter{}, zap.NewNop())

	assert.NoError(t, err)
	assert.Zero(t, sent)
}
