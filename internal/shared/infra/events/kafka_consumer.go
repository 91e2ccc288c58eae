package events

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Espera entre lecturas fallidas. Se duplica en cada fallo seguido hasta maxRetryDelay.
const (
	initialRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// MessageHandler define la interfaz que debe cumplir cualquier consumidor de mensajes (como RecordConsumer).
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// MessageReader es la parte de *kafka.Reader que usa el adapter.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Config() kafka.ReaderConfig
}

// ConsumerAdapter es el "oído" que escucha en Kafka.
type ConsumerAdapter struct {
	reader     MessageReader
	handler    MessageHandler
	log        *zap.Logger
	retryDelay time.Duration
}

func NewConsumerAdapter(reader MessageReader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:     reader,
		handler:    handler,
		log:        log,
		retryDelay: initialRetryDelay,
	}
}

// NewReader crea un reader de grupo para un topic. Sin groupID lee desde el principio de la partición 0.
func NewReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
}

// Run consume hasta que se cancela ctx o se cierra el reader.
func (c *ConsumerAdapter) Run(ctx context.Context) {
	cfg := c.reader.Config()
	c.log.Info("🎧 Iniciando consumidor de Kafka...",
		zap.String("topic", cfg.Topic),
		zap.Strings("brokers", cfg.Brokers),
	)

	delay := c.retryDelay
	for {
		// ReadMessage es una llamada bloqueante.
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			// Si el contexto se cancela, el error es normal y salimos limpiamente.
			if ctx.Err() != nil {
				c.log.Info("Consumidor de Kafka detenido.", zap.String("topic", cfg.Topic))
				return
			}
			if errors.Is(err, io.EOF) {
				c.log.Info("Reader de Kafka cerrado.", zap.String("topic", cfg.Topic))
				return
			}
			c.log.Error("Error al leer mensaje de Kafka", zap.Error(err), zap.Duration("retry_in", delay))
			if !sleep(ctx, delay) {
				c.log.Info("Consumidor de Kafka detenido.", zap.String("topic", cfg.Topic))
				return
			}
			delay = min(delay*2, maxRetryDelay)
			continue
		}

		delay = c.retryDelay
		c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
	}
}

// sleep devuelve false si ctx se cancela antes de que pase d.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
