package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"overcooked-floor/config"
	httpapi "overcooked-floor/floor-svc/internal/api/http"
	"overcooked-floor/floor-svc/internal/events"
	"overcooked-floor/floor-svc/internal/pricing"
	"overcooked-floor/floor-svc/internal/service"
	"overcooked-floor/floor-svc/internal/storage"
	"overcooked-floor/floor-svc/internal/telemetry"
	"overcooked-floor/floor-svc/internal/totals"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	pflag.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "address the HTTP API listens on")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pflag.StringVar(&cfg.PricingFile, "pricing-file", cfg.PricingFile, "YAML file with per-location tax and service rates")
	pflag.IntVar(&cfg.EmitterBuffer, "emitter-buffer", cfg.EmitterBuffer, "notifications buffered before new ones are dropped")
	pflag.Parse()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("floor-svc stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "floor-svc", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	db := config.MustInitPostgres(cfg, logger)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	var (
		menu      service.MenuCatalog = storage.NewMenuRepository(db)
		menuCache *storage.RedisMenuCache
		sinks     []events.Sink
	)
	if cfg.RedisHost != "" {
		rdb := config.MustInitRedis(cfg, logger)
		defer rdb.Close()
		menuCache = storage.NewRedisMenuCache(rdb, cfg.MenuCacheTTL, menu)
		menu = menuCache
		sinks = append(sinks, storage.NewRedisPublisher(rdb, "floor"))
	}
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		sinks = append(sinks, storage.NewKafkaPublisher(writer))
	}
	if cfg.RabbitMQURL != "" {
		conn, ch, err := config.DialRabbitMQ(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		defer ch.Close()
		sinks = append(sinks, storage.NewAMQPPublisher(ch, cfg.RabbitMQExchange))
	}

	var rates service.PricingProvider = pricing.Flat(totals.Rates{})
	if cfg.PricingFile != "" {
		table, err := pricing.Load(cfg.PricingFile)
		if err != nil {
			return err
		}
		rates = table
	}

	emitter := events.NewEmitter(cfg.EmitterBuffer, logger.Named("emitter"), sinks...)
	deps := service.Dependencies{
		Store:    repo,
		Menu:     menu,
		Access:   storage.NewLocationAccess(db),
		Pricing:  rates,
		Notifier: emitter,
		Logger:   logger,
	}
	items := service.NewItemController(deps)
	handler := httpapi.NewHandler(
		service.NewSessionService(deps),
		service.NewWaveOrchestrator(deps, items),
		items,
		service.NewSeatManager(deps),
		service.PayAtTableQR{BaseURL: cfg.PublicBaseURL},
		logger.Named("http"),
	)
	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return emitter.Run(gctx)
	})
	if menuCache != nil && cfg.KafkaBroker != "" {
		reader := config.NewKafkaReader(cfg, cfg.KafkaMenuTopic)
		defer reader.Close()
		consumer := service.NewMenuConsumer(reader, menuCache, logger.Named("menu"))
		g.Go(func() error {
			return consumer.Start(gctx)
		})
	}
	g.Go(func() error {
		logger.Info("Floor Service starting", zap.String("addr", cfg.HTTPAddr), zap.Int("sinks", len(sinks)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	stats := emitter.Stats()
	logger.Info("Floor Service stopped",
		zap.Uint64("notifications_delivered", stats.Delivered),
		zap.Uint64("notifications_failed", stats.Failed),
		zap.Uint64("notifications_dropped", stats.Dropped),
	)
	return err
}
