package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"talent-pipeline/config"
	"talent-pipeline/domain"
	"talent-pipeline/infrastructure"
	"talent-pipeline/usecase"
)

var (
	// Used for flags.
	cfgFile string

	v = viper.New()

	rootCmd = &cobra.Command{
		Use:          config.App,
		Short:        "talent-pipeline screens resumes and tracks qualified candidates through the recruiting pipeline",
		SilenceUsage: true,
	}
)

func init() {
	config.SetDefaults(v)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-pipeline.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// setup loads the config and builds the logger every command starts with.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := infrastructure.NewLogger(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return cfg, logger, nil
}

// openUsecase connects the database and wires the candidate usecase with
// events when a broker is configured. The returned func releases both.
func openUsecase(cfg *config.Config, logger *zap.Logger) (*usecase.CandidateUsecase, func(), error) {
	db, err := infrastructure.NewDatabase(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	var publisher domain.EventPublisher = infrastructure.NoopPublisher{}
	closeBroker := func() {}
	if cfg.Events.URL != "" {
		rmq, err := infrastructure.NewRabbitMQ(cfg.Events.URL, cfg.Events.Queue, logger)
		if err != nil {
			closeDB(db, logger)
			return nil, nil, err
		}
		publisher = rmq
		closeBroker = func() {
			if err := rmq.Close(); err != nil {
				logger.Warn("closing rabbitmq", zap.Error(err))
			}
		}
	} else {
		logger.Info("events.url not set, pipeline events are disabled")
	}

	uc := usecase.NewCandidateUsecase(infrastructure.NewCandidateRepository(db), publisher, logger)
	return uc, func() {
		closeBroker()
		closeDB(db, logger)
	}, nil
}

func closeDB(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("closing database", zap.Error(err))
	}
}
