package application

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// Dispatcher serializa los registros y los publica en el append log en una sola llamada.
type Dispatcher struct {
	appendLog domain.AppendLog
	log       *zap.Logger
}

func NewDispatcher(appendLog domain.AppendLog, log *zap.Logger) *Dispatcher {
	return &Dispatcher{appendLog: appendLog, log: log}
}

// Dispatch publica records en stream. Un lote vacío no hace ninguna llamada.
// Los fallos parciales vuelven tal cual en DeliveryResult; no hay reintentos.
func (d *Dispatcher) Dispatch(ctx context.Context, stream string, records []domain.OutputRecord) (domain.DeliveryResult, []domain.DeliveredRecord, error) {
	if len(records) == 0 {
		return domain.DeliveryResult{}, nil, nil
	}

	entries := make([]domain.Entry, 0, len(records))
	delivered := make([]domain.DeliveredRecord, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return domain.DeliveryResult{}, nil, fmt.Errorf("encode %s record of %s: %w", rec.RecordType(), rec.SourceEventID(), err)
		}
		entries = append(entries, domain.Entry{Data: data, PartitionKey: rec.PartitionKey()})
		delivered = append(delivered, domain.DeliveredRecord{
			Stream:       stream,
			PartitionKey: rec.PartitionKey(),
			Data:         string(data),
			EventID:      rec.SourceEventID(),
			RecordType:   rec.RecordType(),
		})
	}

	result, err := d.appendLog.PutRecords(ctx, stream, entries)
	if err != nil {
		d.log.Error("Error publicando en el append log", zap.String("stream", stream), zap.Int("records", len(entries)), zap.Error(err))
		return domain.DeliveryResult{}, nil, fmt.Errorf("put records to %s: %w", stream, err)
	}

	if result.FailedRecordCount > 0 {
		d.log.Warn("⚠️ Entrega parcial",
			zap.String("stream", stream),
			zap.Int("records", len(entries)),
			zap.Int("failed", result.FailedRecordCount),
		)
	} else {
		d.log.Info("✅ Lote publicado", zap.String("stream", stream), zap.Int("records", len(entries)))
	}

	return result, delivered, nil
}
