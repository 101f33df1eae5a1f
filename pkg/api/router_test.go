package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio_insight/pkg/core/config"
	"portfolio_insight/pkg/core/reconcile"
	"portfolio_insight/pkg/core/store"
	"portfolio_insight/pkg/models"
)

func testRouter() http.Handler {
	return NewRouter(config.Default(), reconcile.NewChecker(nil, reconcile.ModeStrict), store.NewMemoryExtractionRepo())
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestExtractEndpoint(t *testing.T) {
	body := `{
		"text": "Portfolio Statement\nTotal Portfolio Value: $38,500.00\n",
		"tables": [{
			"headers": ["Name", "ISIN", "Quantity", "Value"],
			"rows": [
				["Apple Inc", "US0378331005", "100", "17,500.00"],
				["Microsoft Corp", "US5949181045", "50", "21,000.00"]
			]
		}]
	}`

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/extract", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Data.Securities) != 2 {
		t.Errorf("securities = %d, want 2", len(result.Data.Securities))
	}
	if result.Reconciliation == nil || !result.Reconciliation.Reconciled {
		t.Errorf("expected reconciled report: %+v", result.Reconciliation)
	}
}

func TestQueryEndpoint_Inline(t *testing.T) {
	body := `{
		"question": "What is the total value of the portfolio?",
		"text": "Statement\nTotal Portfolio Value: $59,000.00 USD\n"
	}`

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/query", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Answer, "$59,000.00") {
		t.Errorf("answer = %q", resp.Answer)
	}
}

func TestQueryEndpoint_MissingQuestion(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/query", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
