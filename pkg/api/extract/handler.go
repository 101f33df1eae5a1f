// Package extract exposes the extraction pipeline over HTTP.
package extract

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	coreextract "portfolio_insight/pkg/core/extract"
	"portfolio_insight/pkg/core/ingest"
	"portfolio_insight/pkg/core/reconcile"
	"portfolio_insight/pkg/core/store"
	"portfolio_insight/pkg/models"
)

// Request carries either pre-segmented input (text + tables) or a raw payload
// with its format for the ingest adapter. TablesJSON takes a sloppy sidecar
// from an upstream detector.
type Request struct {
	Text       string         `json:"text"`
	Tables     []models.Table `json:"tables"`
	Content    string         `json:"content,omitempty"`
	Format     string         `json:"format,omitempty"`
	TablesJSON string         `json:"tables_json,omitempty"`
}

// Handler runs the pipeline and persists each result.
type Handler struct {
	aggregator *coreextract.Aggregator
	checker    *reconcile.Checker
	repo       store.ExtractionRepository
}

// NewHandler wires the pipeline dependencies.
func NewHandler(checker *reconcile.Checker, repo store.ExtractionRepository) *Handler {
	return &Handler{
		aggregator: coreextract.NewAggregator(),
		checker:    checker,
		repo:       repo,
	}
}

// HandleExtract is POST /api/extract.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, tbls, err := h.resolveInput(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := h.aggregator.ExtractFinancialData(text, tbls)
	report := h.checker.Check(data)

	result := &models.ExtractionResult{
		ID:             uuid.New(),
		Data:           data,
		Reconciliation: &report,
		ExtractedAt:    time.Now().UTC(),
	}
	if err := h.repo.Save(r.Context(), result); err != nil {
		// Persistence is best-effort; the caller still gets the record.
		log.Printf("[API] failed to save extraction %s: %v", result.ID, err)
	}

	writeJSON(w, http.StatusOK, result)
}

// resolveInput normalizes the three request shapes into (text, tables).
func (h *Handler) resolveInput(req *Request) (string, []models.Table, error) {
	text, tbls := req.Text, req.Tables

	if req.Content != "" {
		doc, err := ingest.FromPayload(req.Content, ingest.Format(req.Format))
		if err != nil {
			return "", nil, err
		}
		text, tbls = doc.Text, doc.Tables
	}

	if req.TablesJSON != "" {
		sidecar, err := ingest.ParseTablesSidecar(req.TablesJSON)
		if err != nil {
			return "", nil, err
		}
		tbls = append(tbls, sidecar...)
	}
	return text, tbls, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}
