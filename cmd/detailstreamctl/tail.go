package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	recordEvents "github.com/davicafu/detailstream/internal/detail/infra/inbound/events"
	"github.com/davicafu/detailstream/internal/entity"
	sharedEvents "github.com/davicafu/detailstream/internal/shared/infra/events"
)

var tailGroup string

var tailCmd = &cobra.Command{
	Use:   "tail [topic]",
	Short: "Read published records from a Kafka topic and print them decoded (see types)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := cfg.StreamName
		if len(args) == 1 {
			topic = args[0]
		}
		group := cfg.KafkaGroupID
		if cmd.Flags().Changed("group") {
			group = tailGroup
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reader := sharedEvents.NewReader(cfg.KafkaBrokers, topic, group)
		defer reader.Close()

		consumer := recordEvents.NewRecordConsumer(entity.Default(), cmd.OutOrStdout(), log)
		sharedEvents.NewConsumerAdapter(reader, consumer, log).Run(ctx)
		return nil
	},
}

func init() {
	tailCmd.Flags().StringVar(&tailGroup, "group", "", "consumer group (empty reads partition 0 from the start)")
}
