package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// Result es lo que devuelve una invocación de ExtractAndDispatch.
type Result struct {
	Stream    string                   `json:"stream"`
	Delivery  domain.DeliveryResult    `json:"delivery"`
	Records   []domain.DeliveredRecord `json:"records"`
	Skipped   []string                 `json:"skipped,omitempty"`
	BatchSize int                      `json:"batch_size"`
}

// Relay une extracción, routing y entrega de un lote. El ledger es opcional.
type Relay struct {
	extractor  *Extractor
	dispatcher *Dispatcher
	router     domain.StreamRouter
	ledger     domain.Ledger
	log        *zap.Logger
}

func NewRelay(extractor *Extractor, dispatcher *Dispatcher, router domain.StreamRouter, ledger domain.Ledger, log *zap.Logger) *Relay {
	return &Relay{
		extractor:  extractor,
		dispatcher: dispatcher,
		router:     router,
		ledger:     ledger,
		log:        log,
	}
}

// ExtractAndDispatch procesa el lote en orden, evento a evento, y lo entrega
// en una sola llamada al append log.
func (r *Relay) ExtractAndDispatch(ctx context.Context, batch domain.Batch) (Result, error) {
	log := r.log.With(zap.String("invocation_id", uuid.NewString()), zap.Int("batch_size", len(batch.Records)))

	res := Result{BatchSize: len(batch.Records)}
	var records []domain.OutputRecord

	for _, event := range batch.Records {
		if r.ledger != nil {
			seen, err := r.ledger.Seen(ctx, event.EventID)
			if err != nil {
				return Result{}, fmt.Errorf("ledger lookup %s: %w", event.EventID, err)
			}
			if seen {
				log.Info("Evento ya entregado, se omite", zap.String("event_id", event.EventID))
				res.Skipped = append(res.Skipped, event.EventID)
				continue
			}
		}

		out, err := r.extractor.Extract(event)
		if err != nil {
			return Result{}, err
		}
		records = append(records, out...)
	}

	res.Stream = r.router.Route(batch.Records)

	delivery, delivered, err := r.dispatcher.Dispatch(ctx, res.Stream, records)
	if err != nil {
		return Result{}, err
	}
	res.Delivery = delivery
	res.Records = delivered

	if r.ledger != nil {
		r.markDelivered(ctx, log, records, delivery)
	}

	log.Info("📬 Lote procesado",
		zap.String("stream", res.Stream),
		zap.Int("records", len(records)),
		zap.Int("failed", delivery.FailedRecordCount),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// markDelivered apunta en el ledger los eventos cuyos registros se aceptaron todos.
// Un fallo al marcar solo se registra: el lote ya está entregado.
func (r *Relay) markDelivered(ctx context.Context, log *zap.Logger, records []domain.OutputRecord, delivery domain.DeliveryResult) {
	if delivery.FailedRecordCount > 0 && len(delivery.Records) != len(records) {
		// Sin detalle por registro no se sabe qué eventos llegaron.
		return
	}

	failed := make(map[string]bool)
	var order []string
	for i, rec := range records {
		id := rec.SourceEventID()
		if _, ok := failed[id]; !ok {
			failed[id] = false
			order = append(order, id)
		}
		if i < len(delivery.Records) && delivery.Records[i].Failed() {
			failed[id] = true
		}
	}

	for _, id := range order {
		if failed[id] {
			continue
		}
		if err := r.ledger.Mark(ctx, id); err != nil {
			log.Warn("⚠️ No se pudo marcar el evento en el ledger", zap.String("event_id", id), zap.Error(err))
		}
	}
}
