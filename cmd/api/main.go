package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mgirard/ledgerline/internal/aggregate"
	aggregateStore "github.com/mgirard/ledgerline/internal/aggregate/store"
	auditStore "github.com/mgirard/ledgerline/internal/audit/store"
	"github.com/mgirard/ledgerline/internal/config"
	"github.com/mgirard/ledgerline/internal/database"
	"github.com/mgirard/ledgerline/internal/dimension"
	dimensionStore "github.com/mgirard/ledgerline/internal/dimension/store"
	"github.com/mgirard/ledgerline/internal/enrich"
	enrichStore "github.com/mgirard/ledgerline/internal/enrich/store"
	"github.com/mgirard/ledgerline/internal/fact"
	factStore "github.com/mgirard/ledgerline/internal/fact/store"
	ledgerHttp "github.com/mgirard/ledgerline/internal/http"
	batchHandler "github.com/mgirard/ledgerline/internal/http/batch"
	budgetHandler "github.com/mgirard/ledgerline/internal/http/budget"
	dimensionHandler "github.com/mgirard/ledgerline/internal/http/dimension"
	factHandler "github.com/mgirard/ledgerline/internal/http/fact"
	mappingHandler "github.com/mgirard/ledgerline/internal/http/mapping"
	reconcileHandler "github.com/mgirard/ledgerline/internal/http/reconcile"
	"github.com/mgirard/ledgerline/internal/ingest"
	"github.com/mgirard/ledgerline/internal/pipeline"
	"github.com/mgirard/ledgerline/internal/reconcile"
	reconcileStore "github.com/mgirard/ledgerline/internal/reconcile/store"
	"github.com/mgirard/ledgerline/internal/retry"
	"github.com/mgirard/ledgerline/internal/staging"
	stagingStore "github.com/mgirard/ledgerline/internal/staging/store"
	"github.com/mgirard/ledgerline/internal/validation"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	retryPolicy := retry.Policy{
		Attempts: cfg.Retry.Attempts,
		Backoff:  cfg.Retry.Backoff,
	}

	var (
		stagingService   = staging.NewService(stagingStore.New(db))
		dimensionService = dimension.NewService(dimensionStore.New(db), retryPolicy)
		factService      = fact.NewService(factStore.New(db))
		aggregateService = aggregate.NewService(aggregateStore.New(db))
		enrichService    = enrich.NewService(enrichStore.New(db), dimensionService, cfg.Pipeline.LookupTimeout)
		ingestService    = ingest.NewService()
		auditTrail       = auditStore.New(db)

		reconcileService = reconcile.NewService(reconcileStore.New(db), reconcile.Config{
			TolerancePct: cfg.Reconcile.TolerancePct,
			TopK:         cfg.Reconcile.TopK,
		}, retryPolicy)

		validationEngine = validation.NewEngine(validation.DefaultRules(), cfg.Pipeline.ConfidenceThreshold)

		pipelineService = pipeline.NewService(
			stagingService,
			validationEngine,
			enrichService,
			factService,
			aggregateService,
			cfg.Pipeline.Workers,
		)
	)

	var (
		batchH     = batchHandler.NewHandler(ingestService, stagingService, pipelineService)
		factH      = factHandler.NewHandler(factService, auditTrail)
		reconcileH = reconcileHandler.NewHandler(reconcileService)
		dimensionH = dimensionHandler.NewHandler(dimensionService)
		budgetH    = budgetHandler.NewHandler(aggregateService)
		mappingH   = mappingHandler.NewHandler(enrichService)
	)

	router := ledgerHttp.New(batchH, factH, reconcileH, dimensionH, budgetH, mappingH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
