package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/davicafu/detailstream/internal/detail/domain"
	sharedCache "github.com/davicafu/detailstream/internal/shared/infra/platform/cache"
)

// CacheLedger guarda en una caché los event ids ya entregados durante ttl.
type CacheLedger struct {
	cache sharedCache.Cache
	ttl   time.Duration
	clock clockwork.Clock
}

func NewCacheLedger(cache sharedCache.Cache, ttl time.Duration, clock clockwork.Clock) *CacheLedger {
	return &CacheLedger{cache: cache, ttl: ttl, clock: clock}
}

func (l *CacheLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	var at time.Time
	hit, err := l.cache.Get(ctx, KeyByEventID(eventID), &at)
	if err != nil {
		return false, fmt.Errorf("ledger get: %w", err)
	}
	return hit, nil
}

func (l *CacheLedger) Mark(ctx context.Context, eventID string) error {
	if err := l.cache.Set(ctx, KeyByEventID(eventID), l.clock.Now().UTC(), int(l.ttl.Seconds())); err != nil {
		return fmt.Errorf("ledger set: %w", err)
	}
	return nil
}

// KeyByEventID forma una key consistente para la caché.
func KeyByEventID(eventID string) string {
	return fmt.Sprintf("detailstream:delivered:%s", eventID)
}

// Verificación estática
var _ domain.Ledger = (*CacheLedger)(nil)
