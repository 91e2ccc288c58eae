package domain

import (
	"context"
	"errors"
)

// ---------- Errores de dominio ----------
var (
	ErrMissingEntityKey = errors.New("change event has no entity key")
	ErrUnknownSink      = errors.New("unknown append log sink")
)

// ---------- Tipos de entrega ----------

// Entry es un registro listo para el append log.
type Entry struct {
	Data         []byte
	PartitionKey string
}

// EntryResult es la respuesta del append log para una entrada. ErrorCode vacío
// significa que la entrada se aceptó.
type EntryResult struct {
	SequenceNumber string `json:"sequence_number,omitempty"`
	ShardID        string `json:"shard_id,omitempty"`
	ErrorCode      string `json:"error_code,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

func (r EntryResult) Failed() bool { return r.ErrorCode != "" }

// DeliveryResult es la respuesta del append log para un lote, en el mismo
// orden que las entradas enviadas.
type DeliveryResult struct {
	FailedRecordCount int           `json:"failed_record_count"`
	Records           []EntryResult `json:"records"`
}

// DeliveredRecord es lo que devuelve extract_and_dispatch por cada registro enviado.
type DeliveredRecord struct {
	Stream       string `json:"stream"`
	PartitionKey string `json:"partition_key"`
	Data         string `json:"data"`
	EventID      string `json:"event_id"`
	RecordType   string `json:"record_type"`
}

// ---------- Interfaces (Ports) ----------

// AppendLog publica un lote completo en un stream particionado con una sola llamada.
// Un fallo parcial se reporta en DeliveryResult; el error queda para fallos de transporte.
type AppendLog interface {
	PutRecords(ctx context.Context, stream string, entries []Entry) (DeliveryResult, error)
}

// Ledger recuerda qué eventos ya se entregaron.
type Ledger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// StreamRouter elige el stream de destino de un lote.
type StreamRouter interface {
	Route(batch []ChangeEvent) string
}
