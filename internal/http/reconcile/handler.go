package reconcile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/http/tenant"
	"github.com/mgirard/ledgerline/internal/reconcile"
)

type Handler struct {
	svc *reconcile.Service
}

func NewHandler(svc *reconcile.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/movements/{id}/suggestions", h.suggest)
	r.Post("/movements/{id}/links", h.confirm)
	r.Delete("/links/{id}", h.unlink)
}

type candidateResponse struct {
	DocumentID   uuid.UUID `json:"document_id"`
	ExternalID   string    `json:"external_id"`
	AmountMinor  int64     `json:"amount_minor"`
	IssueDate    time.Time `json:"issue_date"`
	DiffMinor    int64     `json:"diff_minor"`
	DateDiffDays int       `json:"date_diff_days"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	movementID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	candidates, err := h.svc.Suggest(r.Context(), tenant.FromContext(r.Context()), movementID)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotFound) {
			http.Error(w, "movement not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]candidateResponse, 0, len(candidates))
	for _, c := range candidates {
		resp = append(resp, candidateResponse{
			DocumentID:   c.Document.ID,
			ExternalID:   c.Document.ExternalID,
			AmountMinor:  c.Document.AmountMinor,
			IssueDate:    c.Document.IssueDate,
			DiffMinor:    c.DiffMinor,
			DateDiffDays: c.DateDiffDays,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	DocumentID  uuid.UUID `json:"document_id"`
	AmountMinor int64     `json:"amount_minor"`
	Actor       string    `json:"actor"`
}

type linkResponse struct {
	ID             uuid.UUID `json:"id"`
	MovementID     uuid.UUID `json:"movement_id"`
	DocumentID     uuid.UUID `json:"document_id"`
	AllocatedMinor int64     `json:"allocated_minor"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	movementID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Actor == "" {
		req.Actor = "api"
	}

	link, err := h.svc.Confirm(r.Context(), tenant.FromContext(r.Context()), movementID, req.DocumentID, req.AmountMinor, req.Actor)
	if err != nil {
		switch {
		case errors.Is(err, reconcile.ErrNotFound):
			http.Error(w, "movement or document not found", http.StatusNotFound)
		case errors.Is(err, reconcile.ErrOverAllocation):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, reconcile.ErrConflict):
			http.Error(w, "concurrent reconciliation, retry", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(linkResponse{
		ID:             link.ID,
		MovementID:     link.MovementID,
		DocumentID:     link.DocumentID,
		AllocatedMinor: link.AllocatedMinor,
		CreatedAt:      link.CreatedAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) unlink(w http.ResponseWriter, r *http.Request) {
	linkID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	actor := r.URL.Query().Get("actor")
	if actor == "" {
		actor = "api"
	}

	if err := h.svc.Unlink(r.Context(), tenant.FromContext(r.Context()), linkID, actor); err != nil {
		if errors.Is(err, reconcile.ErrNotFound) {
			http.Error(w, "link not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
