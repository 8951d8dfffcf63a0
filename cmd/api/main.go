package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-triage/internal/api/http"
	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
	"github.com/spec-kit/ticket-triage/internal/cache"
	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/freshservice"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/rules"
	"github.com/spec-kit/ticket-triage/internal/triage"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// The rule table is a startup precondition: a malformed or missing table
	// must prevent any scoring, so the server never comes up without it.
	table, err := loadRuleTable(cfg.Rules)
	if err != nil {
		logger.Fatal("failed to load rule table",
			zap.String("file", cfg.Rules.File),
			zap.Error(err))
	}
	logger.Info("rule table loaded",
		zap.String("file", cfg.Rules.File),
		zap.Int("rules", table.Len()))

	metrics := observability.NewMetrics()
	client := freshservice.NewClient(cfg.Freshservice, logger, metrics)
	redisClient := cache.NewRedis(cfg.Redis, logger)
	defer redisClient.Close()
	snapshotCache := cache.NewSnapshotCache(client, redisClient, logger)

	normalizer := triage.NewNormalizer(logger, nil)
	scorer := triage.NewScorer(table)
	pipeline := triage.NewPipeline(normalizer, scorer, metrics, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, table, snapshotCache),
		Tickets: handlers.NewTicketsHandler(snapshotCache, pipeline),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func loadRuleTable(cfg config.RulesConfig) (*rules.Table, error) {
	load := rules.Load
	if cfg.LegacyShape {
		load = rules.LoadLegacy
	}
	table, err := load(cfg.Dir, cfg.File)
	if err != nil {
		return nil, apperrors.NewConfigError("rule table rejected", err)
	}
	return table, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
