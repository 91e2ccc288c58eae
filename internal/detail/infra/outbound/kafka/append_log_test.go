package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

var entries = []domain.Entry{
	{Data: []byte(`{"n":1}`), PartitionKey: "app-1"},
	{Data: []byte(`{"n":2}`), PartitionKey: "app-2"},
}

func TestAppendLog_PutRecords_Success(t *testing.T) {
	w := &fakeWriter{}

	res, err := NewAppendLog(w, zap.NewNop()).PutRecords(context.Background(), "applications", entries)

	require.NoError(t, err)
	assert.Equal(t, 0, res.FailedRecordCount)
	assert.Len(t, res.Records, 2)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, "applications", w.msgs[0].Topic)
	assert.Equal(t, []byte("app-2"), w.msgs[1].Key)
	assert.Equal(t, []byte(`{"n":1}`), w.msgs[0].Value)
}

func TestAppendLog_PutRecords_PartialFailure(t *testing.T) {
	w := &fakeWriter{err: kafka.WriteErrors{nil, errors.New("message too large")}}

	res, err := NewAppendLog(w, zap.NewNop()).PutRecords(context.Background(), "applications", entries)

	require.NoError(t, err)
	assert.Equal(t, 1, res.FailedRecordCount)
	assert.False(t, res.Records[0].Failed())
	assert.Equal(t, ErrorCodeWriteFailed, res.Records[1].ErrorCode)
	assert.Equal(t, "message too large", res.Records[1].ErrorMessage)
}

func TestAppendLog_PutRecords_TransportError(t *testing.T) {
	w := &fakeWriter{err: errors.New("dial tcp: connection refused")}

	_, err := NewAppendLog(w, zap.NewNop()).PutRecords(context.Background(), "applications", entries)

	assert.Error(t, err)
}
