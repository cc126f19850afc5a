package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	app_service "base-receipts/internal/application/service"
	"base-receipts/internal/domain/entity"
	domain_service "base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/api"
	"base-receipts/internal/infrastructure/cache"
	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/database"
	"base-receipts/internal/infrastructure/explorer"
	"base-receipts/internal/infrastructure/logger"
	"base-receipts/internal/infrastructure/messaging"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.NewLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Create FX application
	app := fx.New(
		// Provide dependencies
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.App),
		fx.Supply(&cfg.Explorer),
		fx.Supply(&cfg.NATS),
		fx.Supply(&cfg.Neo4J),

		// Infrastructure providers
		fx.Provide(
			database.NewNeo4JClient,
			database.NewNeo4JReceiptRepository,
			explorer.NewBasescanClient,
			func(c *explorer.BasescanClient) domain_service.TransactionSource { return c },
			messaging.NewNATSConsumer,
			func(cfg *config.Config) *cache.TTLCache[*entity.WalletStats] {
				return cache.NewTTLCache[*entity.WalletStats](cfg.Cache.StatsTTL)
			},
			func(cfg *config.Config) *cache.TTLCache[[]*entity.ClassifiedTransaction] {
				return cache.NewTTLCache[[]*entity.ClassifiedTransaction](cfg.Cache.TransactionsTTL)
			},
		),

		// Domain services
		fx.Provide(
			domain_service.NewTransactionClassifier,
			domain_service.NewWalletStatsCalculator,
		),

		// Application providers
		fx.Provide(
			app_service.NewWalletStatsService,
			app_service.NewTransactionService,
			app_service.NewReceiptService,
			api.NewHandler,
			api.NewServer,
		),

		// Lifecycle hooks
		fx.Invoke(startAPIServer),
		fx.Invoke(startEventConsumer),
		fx.Invoke(startCacheJanitor),

		// Configure logging
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down application...")

	// Stop the application
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped successfully")
}

// startAPIServer connects storage and starts the HTTP server
func startAPIServer(
	lifecycle fx.Lifecycle,
	server *api.Server,
	neo4jClient *database.Neo4JClient,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Connecting to Neo4J database")
			if err := neo4jClient.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect to Neo4J: %w", err)
			}

			go func() {
				if err := server.Listen(); err != nil {
					log.Error("HTTP server error", zap.Error(err))
				}
			}()

			log.Info("API server started successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := server.Shutdown(); err != nil {
				log.Error("Failed to shut down HTTP server", zap.Error(err))
			}
			return neo4jClient.Close(ctx)
		},
	})
}

// startEventConsumer subscribes to transaction events and invalidates cached
// stats for the wallets they touch
func startEventConsumer(
	lifecycle fx.Lifecycle,
	consumer *messaging.NATSConsumer,
	stats domain_service.WalletStatsService,
	cfg *config.Config,
	log *logger.Logger,
) {
	if !cfg.NATS.Enabled {
		log.Info("NATS is disabled, skipping event consumer")
		return
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := consumer.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect to NATS: %w", err)
			}

			go processEvents(consumer, stats, log)

			log.Info("Event consumer started successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return consumer.Disconnect()
		},
	})
}

// processEvents drains the event channel until it closes
func processEvents(
	consumer *messaging.NATSConsumer,
	stats domain_service.WalletStatsService,
	log *logger.Logger,
) {
	for event := range consumer.GetMessageChannel() {
		stats.InvalidateWalletStats(event.From)
		if event.To != "" {
			stats.InvalidateWalletStats(event.To)
		}
		log.Debug("Invalidated cached stats for event",
			zap.String("hash", event.Hash),
			zap.String("from", event.From),
			zap.String("to", event.To))
	}
}

// startCacheJanitor periodically sweeps expired cache entries
func startCacheJanitor(
	lifecycle fx.Lifecycle,
	statsCache *cache.TTLCache[*entity.WalletStats],
	txCache *cache.TTLCache[[]*entity.ClassifiedTransaction],
	cfg *config.Config,
	log *logger.Logger,
) {
	janitorLog := log.WithComponent("cache-janitor")

	var scheduler gocron.Scheduler

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s, err := gocron.NewScheduler()
			if err != nil {
				return fmt.Errorf("failed to create scheduler: %w", err)
			}

			_, err = s.NewJob(
				gocron.DurationJob(cfg.Cache.SweepInterval),
				gocron.NewTask(func() {
					removed := statsCache.Sweep() + txCache.Sweep()
					if removed > 0 {
						janitorLog.Debug("Swept expired cache entries", zap.Int("removed", removed))
					}
				}),
			)
			if err != nil {
				return fmt.Errorf("failed to schedule cache sweep: %w", err)
			}

			scheduler = s
			s.Start()

			janitorLog.Info("Cache janitor started",
				zap.Duration("interval", cfg.Cache.SweepInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if scheduler != nil {
				return scheduler.Shutdown()
			}
			return nil
		},
	})
}
