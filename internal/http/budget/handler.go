package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgirard/ledgerline/internal/aggregate"
	"github.com/mgirard/ledgerline/internal/http/tenant"
)

type Handler struct {
	svc *aggregate.Service
}

func NewHandler(svc *aggregate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/", h.setPlanned)
	r.Get("/", h.get)
	r.Get("/overruns", h.overruns)
}

type setPlannedRequest struct {
	DimensionKey string `json:"dimension_key"`
	Period       string `json:"period"`
	PlannedMinor int64  `json:"planned_minor"`
}

type aggregateResponse struct {
	DimensionKey  string         `json:"dimension_key"`
	Period        string         `json:"period"`
	PlannedMinor  int64          `json:"planned_minor"`
	RealizedMinor int64          `json:"realized_minor"`
	Ratio         float64        `json:"ratio"`
	Tier          aggregate.Tier `json:"tier"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (h *Handler) setPlanned(w http.ResponseWriter, r *http.Request) {
	var req setPlannedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.DimensionKey == "" || req.Period == "" {
		http.Error(w, "dimension_key and period are required", http.StatusBadRequest)
		return
	}

	key := aggregate.Key{DimensionKey: req.DimensionKey, Period: req.Period}

	if err := h.svc.SetPlanned(r.Context(), tenant.FromContext(r.Context()), key, req.PlannedMinor); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	key := aggregate.Key{
		DimensionKey: r.URL.Query().Get("dimension_key"),
		Period:       r.URL.Query().Get("period"),
	}

	if key.DimensionKey == "" || key.Period == "" {
		http.Error(w, "dimension_key and period query parameters are required", http.StatusBadRequest)
		return
	}

	agg, err := h.svc.Get(r.Context(), tenant.FromContext(r.Context()), key)
	if err != nil {
		if errors.Is(err, aggregate.ErrNotFound) {
			http.Error(w, "aggregate not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(agg)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) overruns(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		http.Error(w, "period query parameter is required", http.StatusBadRequest)
		return
	}

	overruns, err := h.svc.Overruns(r.Context(), tenant.FromContext(r.Context()), period)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]aggregateResponse, 0, len(overruns))
	for _, agg := range overruns {
		resp = append(resp, toResponse(agg))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(agg *aggregate.Aggregate) aggregateResponse {
	return aggregateResponse{
		DimensionKey:  agg.DimensionKey,
		Period:        agg.Period,
		PlannedMinor:  agg.PlannedMinor,
		RealizedMinor: agg.RealizedMinor,
		Ratio:         agg.Ratio,
		Tier:          agg.Tier,
		UpdatedAt:     agg.UpdatedAt,
	}
}
