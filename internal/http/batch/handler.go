package batch

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/http/tenant"
	"github.com/mgirard/ledgerline/internal/ingest"
	"github.com/mgirard/ledgerline/internal/pipeline"
	"github.com/mgirard/ledgerline/internal/staging"
)

type Handler struct {
	ingestSvc   *ingest.Service
	stagingSvc  *staging.Service
	pipelineSvc *pipeline.Service
}

func NewHandler(ingestSvc *ingest.Service, stagingSvc *staging.Service, pipelineSvc *pipeline.Service) *Handler {
	return &Handler{
		ingestSvc:   ingestSvc,
		stagingSvc:  stagingSvc,
		pipelineSvc: pipelineSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
	r.Post("/{id}/run", h.run)
	r.Get("/{id}/report", h.report)
}

type uploadResponse struct {
	BatchID uuid.UUID `json:"batch_id"`
	Staged  int       `json:"staged"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := ingest.Format(r.FormValue("format"))
	if format == "" {
		http.Error(w, "format field is required", http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	if source == "" {
		source = string(format)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	delivery := ingest.Delivery{
		TenantID: tenant.FromContext(r.Context()),
		BatchID:  uuid.New(),
		Source:   source,
	}

	records, err := h.ingestSvc.Parse(format, file, delivery)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.stagingSvc.Ingest(r.Context(), records); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(uploadResponse{BatchID: delivery.BatchID, Staged: len(records)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	summary, err := h.pipelineSvc.RunBatch(r.Context(), tenant.FromContext(r.Context()), batchID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type reportEntryResponse struct {
	RecordID   uuid.UUID           `json:"record_id"`
	ExternalID string              `json:"external_id"`
	Status     staging.Status      `json:"status"`
	Violations []staging.Violation `json:"violations,omitempty"`
	ErrorNote  string              `json:"error_note,omitempty"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entries, err := h.pipelineSvc.Report(r.Context(), tenant.FromContext(r.Context()), batchID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]reportEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, reportEntryResponse{
			RecordID:   e.RecordID,
			ExternalID: e.ExternalID,
			Status:     e.Status,
			Violations: e.Violations,
			ErrorNote:  e.ErrorNote,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
