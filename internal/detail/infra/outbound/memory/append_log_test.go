package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

func TestAppendLog_PutRecordsAndSubscribe(t *testing.T) {
	l := NewAppendLog()
	sub := l.Subscribe(4)

	res, err := l.PutRecords(context.Background(), "apps", []domain.Entry{
		{Data: []byte("a"), PartitionKey: "k1"},
		{Data: []byte("b"), PartitionKey: "k2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.FailedRecordCount)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "1", res.Records[0].SequenceNumber)
	assert.Equal(t, "2", res.Records[1].SequenceNumber)

	got := l.Records("apps")
	require.Len(t, got, 2)
	assert.Equal(t, "k2", got[1].PartitionKey)
	assert.Empty(t, l.Records("other"))

	first := <-sub
	assert.Equal(t, "apps", first.Stream)
	assert.Equal(t, []byte("a"), first.Entry.Data)
}

func TestAppendLog_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAppendLog().PutRecords(ctx, "apps", []domain.Entry{{Data: []byte("a")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAppendLog_FullSubscriberDoesNotBlock(t *testing.T) {
	l := NewAppendLog()
	_ = l.Subscribe(0)

	_, err := l.PutRecords(context.Background(), "apps", []domain.Entry{{Data: []byte("a")}})
	assert.NoError(t, err)
}
