package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tallyworks/tally/internal/infrastructure/config"
	infrakafka "github.com/tallyworks/tally/internal/infrastructure/kafka"
	"github.com/tallyworks/tally/pkg/events"
	pkgkafka "github.com/tallyworks/tally/pkg/kafka"
	"github.com/tallyworks/tally/pkg/observability"
	pkgpostgres "github.com/tallyworks/tally/pkg/postgres"
)

// NewRootCommand creates the tallyctl root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tallyctl",
		Short: "Provisioning and operations CLI for the tally ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newChartCommand())
	rootCmd.AddCommand(newPeriodCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}

// deps bundles the shared wiring every database-backed subcommand needs.
type deps struct {
	cfg       config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	producer  *pkgkafka.Producer
	publisher events.EventPublisher
}

func openDeps(ctx context.Context) (*deps, error) {
	_ = godotenv.Load()

	// Unlike the server, the CLI has no JWT surface, so full config
	// validation is skipped.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "text",
	})

	poolCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pkgpostgres.NewPool(poolCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})

	return &deps{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		producer:  producer,
		publisher: infrakafka.NewPublisher(producer, logger),
	}, nil
}

func (d *deps) close() {
	d.producer.Close()
	d.pool.Close()
}
