package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/infra/outbound/memory"
	"github.com/davicafu/detailstream/internal/entity"
)

// Line es lo que RecordConsumer escribe por cada registro leído. Action y
// RecordSource solo vienen en los mensajes upstream {action, recordSource, data}.
type Line struct {
	Key          string        `json:"key"`
	Type         string        `json:"type"`
	Action       *string       `json:"action,omitempty"`
	RecordSource *string       `json:"record_source,omitempty"`
	Entity       entity.Entity `json:"entity"`
}

// RecordConsumer reconstruye los registros publicados y los vuelca como JSON lines.
type RecordConsumer struct {
	registry *entity.Registry
	mu       sync.Mutex
	enc      *json.Encoder
	log      *zap.Logger
}

func NewRecordConsumer(registry *entity.Registry, out io.Writer, log *zap.Logger) *RecordConsumer {
	return &RecordConsumer{
		registry: registry,
		enc:      json.NewEncoder(out),
		log:      log,
	}
}

// HandleMessage nunca falla: un registro que no se puede decodificar se registra y se descarta.
func (c *RecordConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	line, err := c.decode(key, payload)
	if err != nil {
		c.log.Warn("Registro no reconocido", zap.String("key", key), zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(line); err != nil {
		c.log.Error("No se pudo escribir el registro", zap.String("key", key), zap.Error(err))
		return
	}
	c.log.Debug("📥 Registro recibido", zap.String("key", key), zap.String("type", line.Type))
}

// decode prueba primero un registro publicado por el relay (attributes.type en
// la raíz) y, si no lo es, un mensaje upstream con el tipo en data.attributes.type.
func (c *RecordConsumer) decode(key string, payload []byte) (Line, error) {
	e, err := c.registry.DecodeRecord(payload)
	if err == nil {
		return Line{Key: key, Type: e.EntityType(), Entity: e}, nil
	}
	if !errors.Is(err, entity.ErrMissingEntity) {
		return Line{}, err
	}

	msg, err := c.registry.FromStream(payload)
	if err != nil {
		return Line{}, err
	}
	return Line{
		Key:          key,
		Type:         msg.Entity.EntityType(),
		Action:       msg.Action,
		RecordSource: msg.RecordSource,
		Entity:       msg.Entity,
	}, nil
}

// BackgroundConsumerChan escucha las entregas del append log en memoria.
func BackgroundConsumerChan(ctx context.Context, ch <-chan memory.Delivery, consumer *RecordConsumer) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				consumer.log.Info("RecordConsumer stopped")
				return
			case d := <-ch:
				consumer.HandleMessage(ctx, d.Entry.PartitionKey, d.Entry.Data)
			}
		}
	}()
}
