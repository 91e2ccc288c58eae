package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/config"
	"github.com/davicafu/detailstream/internal/detail/application"
	"github.com/davicafu/detailstream/internal/detail/domain"
	fileLog "github.com/davicafu/detailstream/internal/detail/infra/outbound/file"
	kafkaLog "github.com/davicafu/detailstream/internal/detail/infra/outbound/kafka"
	kinesisLog "github.com/davicafu/detailstream/internal/detail/infra/outbound/kinesis"
	"github.com/davicafu/detailstream/internal/detail/infra/outbound/ledger"
	memoryLog "github.com/davicafu/detailstream/internal/detail/infra/outbound/memory"
	sharedCache "github.com/davicafu/detailstream/internal/shared/infra/platform/cache"
)

// ledgerSweepInterval es cada cuánto el ledger en memoria purga ids caducados.
const ledgerSweepInterval = 5 * time.Minute

// App agrupa lo que necesitan los hosts. Close libera clientes y writers.
type App struct {
	Relay     *application.Relay
	AppendLog domain.AppendLog
	closers   []func() error
}

func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewApp monta el relay completo a partir de la configuración.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	app := &App{}

	appendLog, closeLog, err := NewAppendLog(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app.AppendLog = appendLog
	if closeLog != nil {
		app.closers = append(app.closers, closeLog)
	}

	deliveries, closeLedger := NewLedger(ctx, cfg, log)
	if closeLedger != nil {
		app.closers = append(app.closers, closeLedger)
	}

	rules, err := cfg.Routing()
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("routing rules: %w", err)
	}

	app.Relay = application.NewRelay(
		application.NewExtractor(cfg.DomainMarker, cfg.KeyAttribute, clockwork.NewRealClock(), log),
		application.NewDispatcher(appendLog, log),
		application.NewEmailDomainRouter(rules),
		deliveries,
		log,
	)
	return app, nil
}

// NewAppendLog elige el append log según cfg.Sink.
func NewAppendLog(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.AppendLog, func() error, error) {
	switch cfg.Sink {
	case config.SinkKinesis:
		client, err := kinesisLog.NewClient(ctx, cfg.AWSRegion, cfg.KinesisEndpoint)
		if err != nil {
			return nil, nil, err
		}
		log.Info("🚀 Usando Kinesis como append log", zap.String("region", cfg.AWSRegion))
		return kinesisLog.NewAppendLog(client, log), nil, nil

	case config.SinkKafka:
		writer := kafkaLog.NewWriter(cfg.KafkaBrokers)
		log.Info("🚀 Usando Kafka como append log", zap.Strings("brokers", cfg.KafkaBrokers))
		return kafkaLog.NewAppendLog(writer, log), writer.Close, nil

	case config.SinkMemory:
		log.Info("⚡️ Usando append log en memoria")
		return memoryLog.NewAppendLog(), nil, nil

	case config.SinkFile:
		log.Info("📁 Usando append log en ficheros", zap.String("dir", cfg.FileSinkDir))
		return fileLog.NewAppendLog(cfg.FileSinkDir), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownSink, cfg.Sink)
}

// NewLedger devuelve nil si el ledger está desactivado. Con REDIS_ADDR usa
// Redis; si no responde cae a la caché en memoria.
func NewLedger(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.Ledger, func() error) {
	if !cfg.LedgerEnabled {
		return nil, nil
	}

	// Con TTL 0 Redis no expira nunca y el ticker de limpieza no arranca.
	ttl := cfg.LedgerTTL
	if ttl <= 0 {
		log.Warn("⚠️ LEDGER_TTL no válido, se usa el valor por defecto",
			zap.Duration("ttl", ttl), zap.Duration("default", config.DefaultLedgerTTL))
		ttl = config.DefaultLedgerTTL
	}
	clock := clockwork.NewRealClock()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("⚠️ Redis no disponible, ledger en memoria", zap.Error(err))
			_ = rdb.Close()
		} else {
			log.Info("✅ Redis conectado, ledger habilitado")
			return ledger.NewCacheLedger(sharedCache.NewRedisCache(rdb, ttl), ttl, clock), rdb.Close
		}
	}

	mem := sharedCache.NewInMemoryCache(clock, ttl, ledgerSweepInterval)
	return ledger.NewCacheLedger(mem, ttl, clock), func() error {
		mem.Stop()
		return nil
	}
}
