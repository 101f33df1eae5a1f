// Package query exposes the intent handlers over HTTP.
package query

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	coreextract "portfolio_insight/pkg/core/extract"
	corequery "portfolio_insight/pkg/core/query"
	"portfolio_insight/pkg/core/store"
	"portfolio_insight/pkg/models"
)

// Request asks a question against a stored extraction or inline input.
type Request struct {
	Question     string         `json:"question"`
	ExtractionID string         `json:"extraction_id,omitempty"`
	Text         string         `json:"text,omitempty"`
	Tables       []models.Table `json:"tables,omitempty"`
}

// Response is the display-ready answer string; no structured payload, the
// chat surface renders this verbatim.
type Response struct {
	Answer string `json:"answer"`
}

// Handler routes questions through the intent rules.
type Handler struct {
	router *corequery.Router
	repo   store.ExtractionRepository
}

// NewHandler wires the query dependencies.
func NewHandler(repo store.ExtractionRepository) *Handler {
	return &Handler{router: corequery.NewRouter(), repo: repo}
}

// HandleQuery is POST /api/query.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	in, err := h.resolveInput(r, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	answer := h.router.Answer(*in, req.Question)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{Answer: answer}); err != nil {
		log.Printf("[API] failed to encode answer: %v", err)
	}
}

func (h *Handler) resolveInput(r *http.Request, req *Request) (*corequery.Input, error) {
	if req.ExtractionID != "" {
		id, err := uuid.Parse(req.ExtractionID)
		if err != nil {
			return nil, fmt.Errorf("invalid extraction_id: %w", err)
		}
		result, err := h.repo.Load(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return &corequery.Input{Data: result.Data}, nil
	}

	data := coreextract.ExtractFinancialData(req.Text, req.Tables)
	return &corequery.Input{Data: data, Tables: req.Tables, Text: req.Text}, nil
}
