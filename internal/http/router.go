package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mgirard/ledgerline/internal/http/batch"
	"github.com/mgirard/ledgerline/internal/http/budget"
	"github.com/mgirard/ledgerline/internal/http/dimension"
	"github.com/mgirard/ledgerline/internal/http/fact"
	"github.com/mgirard/ledgerline/internal/http/mapping"
	"github.com/mgirard/ledgerline/internal/http/reconcile"
	"github.com/mgirard/ledgerline/internal/http/tenant"
)

func New(
	batchV1 *batch.Handler,
	factV1 *fact.Handler,
	reconcileV1 *reconcile.Handler,
	dimensionV1 *dimension.Handler,
	budgetV1 *budget.Handler,
	mappingV1 *mapping.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", tenant.Header},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(tenant.Middleware)

		r.Route("/batches", batchV1.Routes)

		r.Route("/facts", func(r chi.Router) {
			factV1.Routes(r)
		})

		r.Route("/reconciliation", func(r chi.Router) {
			reconcileV1.Routes(r)
		})

		r.Route("/dimensions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			dimensionV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			budgetV1.Routes(r)
		})

		r.Route("/mappings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			mappingV1.Routes(r)
		})
	})

	return router
}
