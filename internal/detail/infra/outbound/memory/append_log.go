package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// Delivery es una entrada aceptada, con su stream y número de secuencia.
type Delivery struct {
	Stream         string
	SequenceNumber string
	Entry          domain.Entry
}

// AppendLog guarda las entradas en memoria por stream. Útil para tests y
// ejecuciones locales; los suscriptores reciben cada entrada sin bloquear.
type AppendLog struct {
	mu          sync.RWMutex
	streams     map[string][]domain.Entry
	subscribers []chan Delivery
	seq         int
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ domain.AppendLog = (*AppendLog)(nil)

func NewAppendLog() *AppendLog {
	return &AppendLog{streams: make(map[string][]domain.Entry)}
}

func (l *AppendLog) PutRecords(ctx context.Context, stream string, entries []domain.Entry) (domain.DeliveryResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeliveryResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	res := domain.DeliveryResult{Records: make([]domain.EntryResult, 0, len(entries))}
	for _, e := range entries {
		l.seq++
		seq := strconv.Itoa(l.seq)
		l.streams[stream] = append(l.streams[stream], e)
		res.Records = append(res.Records, domain.EntryResult{SequenceNumber: seq, ShardID: "shardId-000000000000"})
		l.distribute(Delivery{Stream: stream, SequenceNumber: seq, Entry: e})
	}
	return res, nil
}

// distribute no bloquea: si el canal de un suscriptor está lleno se pierde la entrega.
func (l *AppendLog) distribute(d Delivery) {
	for _, sub := range l.subscribers {
		select {
		case sub <- d:
		default:
		}
	}
}

// Subscribe devuelve un canal que recibe cada entrada aceptada a partir de ahora.
func (l *AppendLog) Subscribe(bufferSize int) <-chan Delivery {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Delivery, bufferSize)
	l.subscribers = append(l.subscribers, ch)
	return ch
}

// Records devuelve una copia de las entradas de un stream.
func (l *AppendLog) Records(stream string) []domain.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Entry, len(l.streams[stream]))
	copy(out, l.streams[stream])
	return out
}
