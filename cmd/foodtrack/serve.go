package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foodtrack/internal/config"
	"foodtrack/internal/database"
	"foodtrack/internal/events"
	"foodtrack/internal/logger"
	"foodtrack/internal/model"
	"foodtrack/internal/repository"
	"foodtrack/internal/seed"
	"foodtrack/internal/server"
	"foodtrack/internal/service"
	"foodtrack/internal/worker"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	if err := config.ServerFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

type storage struct {
	db          *sql.DB
	catalog     repository.CatalogRepository
	orders      repository.OrderRepository
	collections repository.CollectionRepository
}

func openStorage(ctx context.Context, uri string) (*storage, error) {
	if uri == "" {
		return &storage{
			catalog:     repository.NewMemoryCatalog(model.DefaultCatalog()),
			orders:      repository.NewMemoryOrders(),
			collections: repository.NewMemoryCollections(),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.NewDB(ctx, uri)
	if err != nil {
		return nil, err
	}

	if err := database.InitSchema(ctx, db); err != nil {
		database.CloseDB(db)
		return nil, err
	}
	if err := database.SeedCatalog(ctx, db, model.DefaultCatalog()); err != nil {
		database.CloseDB(db)
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	return &storage{
		db:          db,
		catalog:     repository.NewPostgresCatalog(db),
		orders:      repository.NewPostgresOrders(db),
		collections: repository.NewPostgresCollections(db),
	}, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New("foodtrack", cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	store, err := openStorage(ctx, cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if store.db != nil {
		defer database.CloseDB(store.db)
		slog.Info("using PostgreSQL storage")
	} else {
		slog.Info("using in-memory storage")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		rp, err := events.NewRabbitPublisher(ctx, events.RabbitConfig{URL: cfg.RabbitMQURL})
		if err != nil {
			return fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		publisher = rp
		slog.Info("publishing events to RabbitMQ", "exchange", events.Exchange)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("failed to close publisher", "error", err)
		}
	}()

	// Services
	wasteTypes := model.DefaultWasteTypes()
	catalogSvc := service.NewCatalogService(store.catalog)
	orderSvc := service.NewOrderService(store.orders, publisher)
	collectionSvc := service.NewCollectionService(store.collections, wasteTypes, publisher)
	reportSvc := service.NewReportService(store.collections, wasteTypes)

	if cfg.DemoCollections > 0 {
		if err := seed.Collections(ctx, collectionSvc, faker.New(), cfg.DemoCollections); err != nil {
			return fmt.Errorf("seed demo collections: %w", err)
		}
		slog.Info("seeded demo collections", "count", cfg.DemoCollections)
	}

	// Worker
	if cfg.StatusTickInterval > 0 {
		ticker := worker.NewStatusTicker(orderSvc, cfg.StatusTickInterval, cfg.StatusTickBatch)
		go ticker.Start(ctx)
	}

	deps := server.Deps{
		Catalog:     catalogSvc,
		Orders:      orderSvc,
		Collections: collectionSvc,
		Reports:     reportSvc,
		Logger:      log,
		StaticDir:   cfg.StaticDir,
	}
	if store.db != nil {
		deps.DB = store.db
	}

	return server.Run(ctx, cfg.RunAddress, server.NewRouter(deps))
}
