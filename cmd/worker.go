package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"talent-pipeline/domain"
	"talent-pipeline/infrastructure"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume pipeline events and write an audit log",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return work(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func work(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Events.URL == "" {
		return errors.New("events.url is required for the worker (set RABBITMQ_URL)")
	}
	rmq, err := infrastructure.NewRabbitMQ(cfg.Events.URL, cfg.Events.Queue, logger)
	if err != nil {
		return err
	}
	defer rmq.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	audit := logger.Named("audit")
	logger.Info("worker started", zap.String("queue", cfg.Events.Queue))
	err = rmq.Consume(ctx, func(_ context.Context, e domain.Event) error {
		audit.Info(string(e.Type),
			zap.String("candidate_id", e.CandidateID),
			zap.String("from", e.From),
			zap.String("to", e.To),
			zap.Time("occurred_at", e.OccurredAt),
		)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("worker stopped")
		return nil
	}
	return err
}
