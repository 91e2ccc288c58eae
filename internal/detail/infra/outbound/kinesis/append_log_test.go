package kinesis

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

type fakeClient struct {
	input *kinesis.PutRecordsInput
	out   *kinesis.PutRecordsOutput
	err   error
	calls int
}

func (f *fakeClient) PutRecords(ctx context.Context, params *kinesis.PutRecordsInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordsOutput, error) {
	f.calls++
	f.input = params
	return f.out, f.err
}

func TestAppendLog_PutRecords(t *testing.T) {
	client := &fakeClient{out: &kinesis.PutRecordsOutput{
		FailedRecordCount: aws.Int32(1),
		Records: []types.PutRecordsResultEntry{
			{SequenceNumber: aws.String("4959"), ShardId: aws.String("shardId-000000000001")},
			{ErrorCode: aws.String("ProvisionedThroughputExceededException"), ErrorMessage: aws.String("Rate exceeded")},
		},
	}}

	res, err := NewAppendLog(client, zap.NewNop()).PutRecords(context.Background(), "applications", []domain.Entry{
		{Data: []byte(`{"a":1}`), PartitionKey: "app-1"},
		{Data: []byte(`{"b":2}`), PartitionKey: "app-2"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "applications", aws.ToString(client.input.StreamName))
	require.Len(t, client.input.Records, 2)
	assert.Equal(t, "app-2", aws.ToString(client.input.Records[1].PartitionKey))
	assert.Equal(t, []byte(`{"a":1}`), client.input.Records[0].Data)

	assert.Equal(t, 1, res.FailedRecordCount)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "4959", res.Records[0].SequenceNumber)
	assert.False(t, res.Records[0].Failed())
	assert.True(t, res.Records[1].Failed())
	assert.Equal(t, "Rate exceeded", res.Records[1].ErrorMessage)
}

func TestAppendLog_PutRecordsError(t *testing.T) {
	client := &fakeClient{err: errors.New("ResourceNotFoundException")}

	_, err := NewAppendLog(client, zap.NewNop()).PutRecords(context.Background(), "missing", []domain.Entry{
		{Data: []byte(`{}`), PartitionKey: "k"},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ResourceNotFoundException")
}
