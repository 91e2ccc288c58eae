package kinesis

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// PutRecordsAPI es la parte del cliente de Kinesis que usamos.
type PutRecordsAPI interface {
	PutRecords(ctx context.Context, params *kinesis.PutRecordsInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordsOutput, error)
}

// AppendLog publica lotes en un stream de Kinesis con PutRecords.
type AppendLog struct {
	client PutRecordsAPI
	log    *zap.Logger
}

func NewAppendLog(client PutRecordsAPI, log *zap.Logger) *AppendLog {
	return &AppendLog{client: client, log: log}
}

// NewClient crea el cliente de Kinesis. Si endpoint no está vacío se usa en lugar
// del de AWS (LocalStack y similares).
func NewClient(ctx context.Context, region, endpoint string) (*kinesis.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var opts []func(*kinesis.Options)
	if endpoint != "" {
		opts = append(opts, func(o *kinesis.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	return kinesis.NewFromConfig(cfg, opts...), nil
}

func (a *AppendLog) PutRecords(ctx context.Context, stream string, entries []domain.Entry) (domain.DeliveryResult, error) {
	input := &kinesis.PutRecordsInput{
		StreamName: aws.String(stream),
		Records:    make([]types.PutRecordsRequestEntry, 0, len(entries)),
	}
	for _, e := range entries {
		input.Records = append(input.Records, types.PutRecordsRequestEntry{
			Data:         e.Data,
			PartitionKey: aws.String(e.PartitionKey),
		})
	}

	out, err := a.client.PutRecords(ctx, input)
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("kinesis put records: %w", err)
	}

	res := domain.DeliveryResult{
		FailedRecordCount: int(aws.ToInt32(out.FailedRecordCount)),
		Records:           make([]domain.EntryResult, 0, len(out.Records)),
	}
	for _, r := range out.Records {
		res.Records = append(res.Records, domain.EntryResult{
			SequenceNumber: aws.ToString(r.SequenceNumber),
			ShardID:        aws.ToString(r.ShardId),
			ErrorCode:      aws.ToString(r.ErrorCode),
			ErrorMessage:   aws.ToString(r.ErrorMessage),
		})
	}

	a.log.Debug("Kinesis PutRecords", zap.String("stream", stream), zap.Int("records", len(entries)), zap.Int("failed", res.FailedRecordCount))
	return res, nil
}

// Verificación estática
var _ domain.AppendLog = (*AppendLog)(nil)
