package kafka

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// ErrorCodeWriteFailed es el código que se devuelve para un mensaje que Kafka rechazó.
const ErrorCodeWriteFailed = "KafkaWriteFailed"

// MessageWriter es la parte de *kafka.Writer que usamos.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// AppendLog publica lotes en Kafka. El stream es el topic y la clave de
// partición va como key del mensaje.
type AppendLog struct {
	writer MessageWriter
	log    *zap.Logger
}

func NewAppendLog(writer MessageWriter, log *zap.Logger) *AppendLog {
	return &AppendLog{writer: writer, log: log}
}

// NewWriter crea un writer sin topic fijo: cada mensaje lleva el suyo.
// El balanceo por hash mantiene juntos los mensajes de una misma entidad.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func (a *AppendLog) PutRecords(ctx context.Context, stream string, entries []domain.Entry) (domain.DeliveryResult, error) {
	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, kafka.Message{
			Topic: stream,
			Key:   []byte(e.PartitionKey),
			Value: e.Data,
		})
	}

	res := domain.DeliveryResult{Records: make([]domain.EntryResult, len(entries))}

	err := a.writer.WriteMessages(ctx, msgs...)
	if err == nil {
		return res, nil
	}

	// WriteErrors trae un error por mensaje, en el mismo orden: es un fallo parcial.
	var writeErrs kafka.WriteErrors
	if !errors.As(err, &writeErrs) || len(writeErrs) != len(entries) {
		a.log.Error("Error publishing to Kafka", zap.String("topic", stream), zap.Error(err))
		return domain.DeliveryResult{}, err
	}

	for i, werr := range writeErrs {
		if werr == nil {
			continue
		}
		res.FailedRecordCount++
		res.Records[i] = domain.EntryResult{ErrorCode: ErrorCodeWriteFailed, ErrorMessage: werr.Error()}
	}
	a.log.Warn("⚠️ Kafka rechazó parte del lote", zap.String("topic", stream), zap.Int("failed", res.FailedRecordCount))
	return res, nil
}

// Verificación estática
var _ domain.AppendLog = (*AppendLog)(nil)
