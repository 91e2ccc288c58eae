package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/application"
	"github.com/davicafu/detailstream/internal/detail/domain"
)

// BatchRelay es lo que el handler necesita del relay.
type BatchRelay interface {
	ExtractAndDispatch(ctx context.Context, batch domain.Batch) (application.Result, error)
}

// Handler adapta el relay a la firma que espera lambda.Start.
type Handler struct {
	relay BatchRelay
	log   *zap.Logger
}

func NewHandler(relay BatchRelay, log *zap.Logger) *Handler {
	return &Handler{relay: relay, log: log}
}

// Handle procesa un lote del stream. Un error hace que Lambda reintente el lote completo.
func (h *Handler) Handle(ctx context.Context, batch events.DynamoDBEvent) (application.Result, error) {
	res, err := h.relay.ExtractAndDispatch(ctx, batch)
	if err != nil {
		h.log.Error("❌ Fallo procesando el lote", zap.Int("batch_size", len(batch.Records)), zap.Error(err))
		return application.Result{}, err
	}
	return res, nil
}
