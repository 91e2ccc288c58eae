package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/bootstrap"
	"github.com/davicafu/detailstream/internal/config"
	"github.com/davicafu/detailstream/internal/detail/application"
	"github.com/davicafu/detailstream/internal/detail/domain"
)

var replayDispatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Run a recorded DynamoDB stream batch through the relay",
	Long: `Reads a batch in the Lambda event format ({"Records": [...]}).
Without --dispatch the extracted records are printed one per line and nothing is delivered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := readBatch(args[0])
		if err != nil {
			return err
		}
		return runReplay(cmd.Context(), cfg, log, batch, replayDispatch, cmd.OutOrStdout())
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayDispatch, "dispatch", false, "deliver the records to the configured sink")
}

func readBatch(path string) (domain.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Batch{}, err
	}
	var batch domain.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return domain.Batch{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return batch, nil
}

func runReplay(ctx context.Context, cfg *config.Config, log *zap.Logger, batch domain.Batch, dispatch bool, out io.Writer) error {
	enc := json.NewEncoder(out)

	if !dispatch {
		extractor := application.NewExtractor(cfg.DomainMarker, cfg.KeyAttribute, clockwork.NewRealClock(), log)
		for _, event := range batch.Records {
			records, err := extractor.Extract(event)
			if err != nil {
				return err
			}
			for _, rec := range records {
				if err := enc.Encode(rec); err != nil {
					return err
				}
			}
		}
		return nil
	}

	app, err := bootstrap.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.Relay.ExtractAndDispatch(ctx, batch)
	if err != nil {
		return err
	}
	return enc.Encode(res)
}
