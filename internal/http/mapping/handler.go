package mapping

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgirard/ledgerline/internal/enrich"
	"github.com/mgirard/ledgerline/internal/http/tenant"
)

type Handler struct {
	svc *enrich.Service
}

func NewHandler(svc *enrich.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.learn)
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern"`
	Category   string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.RawPattern == "" || req.Category == "" {
		http.Error(w, "raw_pattern and category are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), tenant.FromContext(r.Context()), req.RawPattern, req.Category); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
