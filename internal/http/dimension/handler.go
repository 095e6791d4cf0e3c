package dimension

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/dimension"
	"github.com/mgirard/ledgerline/internal/http/tenant"
)

type Handler struct {
	svc *dimension.Service
}

func NewHandler(svc *dimension.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/{kind}/{key}", h.upsert)
	r.Get("/{kind}/{key}", h.current)
	r.Get("/{kind}/{key}/history", h.history)
}

type versionResponse struct {
	ID          uuid.UUID         `json:"id"`
	Kind        dimension.Kind    `json:"kind"`
	BusinessKey string            `json:"business_key"`
	Attrs       map[string]string `json:"attrs"`
	ValidFrom   time.Time         `json:"valid_from"`
	ValidTo     *time.Time        `json:"valid_to,omitempty"`
	Current     bool              `json:"current"`
}

type upsertRequest struct {
	Attrs         map[string]string `json:"attrs"`
	EffectiveDate string            `json:"effective_date"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown dimension kind", http.StatusBadRequest)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	effective := time.Now().UTC()

	if req.EffectiveDate != "" {
		t, err := time.Parse(time.DateOnly, req.EffectiveDate)
		if err != nil {
			http.Error(w, "invalid effective_date", http.StatusBadRequest)
			return
		}

		effective = t
	}

	v, err := h.svc.Upsert(r.Context(), tenant.FromContext(r.Context()), kind, chi.URLParam(r, "key"), req.Attrs, effective)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(v)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown dimension kind", http.StatusBadRequest)
		return
	}

	var asOf *time.Time

	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid as_of", http.StatusBadRequest)
			return
		}

		asOf = &t
	}

	v, err := h.svc.Current(r.Context(), tenant.FromContext(r.Context()), kind, chi.URLParam(r, "key"), asOf)
	if err != nil {
		if errors.Is(err, dimension.ErrNotFound) {
			http.Error(w, "no version covers the requested date", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(v)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown dimension kind", http.StatusBadRequest)
		return
	}

	versions, err := h.svc.History(r.Context(), tenant.FromContext(r.Context()), kind, chi.URLParam(r, "key"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]versionResponse, 0, len(versions))
	for _, v := range versions {
		resp = append(resp, toResponse(v))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(v *dimension.Version) versionResponse {
	return versionResponse{
		ID:          v.ID,
		Kind:        v.Kind,
		BusinessKey: v.BusinessKey,
		Attrs:       v.Attrs,
		ValidFrom:   v.ValidFrom,
		ValidTo:     v.ValidTo,
		Current:     v.Current,
	}
}

func parseKind(s string) (dimension.Kind, bool) {
	switch dimension.Kind(s) {
	case dimension.KindAccount, dimension.KindSupplier, dimension.KindProduct:
		return dimension.Kind(s), true
	}

	return "", false
}
