package fact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/audit"
	auditstore "github.com/mgirard/ledgerline/internal/audit/store"
	"github.com/mgirard/ledgerline/internal/fact"
	"github.com/mgirard/ledgerline/internal/http/tenant"
)

type Handler struct {
	svc   *fact.Service
	audit *auditstore.Store
}

func NewHandler(svc *fact.Service, auditStore *auditstore.Store) *Handler {
	return &Handler{svc: svc, audit: auditStore}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Get("/{id}/trail", h.trail)
}

type factResponse struct {
	ID           uuid.UUID   `json:"id"`
	Source       string      `json:"source"`
	ExternalID   string      `json:"external_id"`
	Kind         fact.Kind   `json:"kind"`
	AmountMinor  int64       `json:"amount_minor"`
	TaxMinor     int64       `json:"tax_minor"`
	SettledMinor int64       `json:"settled_minor"`
	IssueDate    time.Time   `json:"issue_date"`
	Period       string      `json:"period"`
	Category     string      `json:"category"`
	NeedsLinking bool        `json:"needs_linking"`
	Status       fact.Status `json:"status"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Get(r.Context(), tenant.FromContext(r.Context()), id)
	if err != nil {
		if errors.Is(err, fact.ErrNotFound) {
			http.Error(w, "fact not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(factResponse{
		ID:           f.ID,
		Source:       f.Source,
		ExternalID:   f.ExternalID,
		Kind:         f.Kind,
		AmountMinor:  f.AmountMinor,
		TaxMinor:     f.TaxMinor,
		SettledMinor: f.SettledMinor,
		IssueDate:    f.IssueDate,
		Period:       f.Period,
		Category:     f.Category,
		NeedsLinking: f.NeedsLinking,
		Status:       f.Status,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type eventResponse struct {
	Previous   *string   `json:"previous,omitempty"`
	Next       string    `json:"next"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (h *Handler) trail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	events, err := h.audit.Trail(r.Context(), tenant.FromContext(r.Context()), audit.EntityFact, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, eventResponse{
			Previous:   ev.Previous,
			Next:       ev.Next,
			Actor:      ev.Actor,
			OccurredAt: ev.OccurredAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
