package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/bootstrap"
	recordEvents "github.com/davicafu/detailstream/internal/detail/infra/inbound/events"
	batchHttp "github.com/davicafu/detailstream/internal/detail/infra/inbound/http"
	"github.com/davicafu/detailstream/internal/detail/infra/outbound/memory"
	"github.com/davicafu/detailstream/internal/entity"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept DynamoDB stream batches over HTTP (POST /batches)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap.NewApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer app.Close()

		// Con el append log en memoria volcamos lo publicado por stdout.
		if mem, ok := app.AppendLog.(*memory.AppendLog); ok {
			log.Info("🎧 Iniciando listener en memoria para registros publicados")
			consumer := recordEvents.NewRecordConsumer(entity.Default(), cmd.OutOrStdout(), log)
			recordEvents.BackgroundConsumerChan(ctx, mem.Subscribe(64), consumer)
		}

		router := gin.New()
		router.Use(gin.Recovery())
		batchHttp.RegisterBatchRoutes(router, batchHttp.NewBatchHandler(app.Relay, log))

		srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
