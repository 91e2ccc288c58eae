package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/bootstrap"
	"github.com/davicafu/detailstream/internal/config"
	lambdaHandler "github.com/davicafu/detailstream/internal/detail/infra/inbound/lambda"
	"github.com/davicafu/detailstream/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel) // inicializa zap
	log := logger.Logger()
	defer log.Sync()

	// El cliente del append log se crea una vez y se reutiliza entre invocaciones.
	app, err := bootstrap.NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to build relay", zap.Error(err))
	}
	defer app.Close()

	log.Info("🚀 Lambda lista",
		zap.String("sink", cfg.Sink),
		zap.String("stream", cfg.StreamName),
		zap.Bool("ledger", cfg.LedgerEnabled),
	)
	lambda.Start(lambdaHandler.NewHandler(app.Relay, log).Handle)
}
