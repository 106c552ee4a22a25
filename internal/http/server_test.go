package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"expensed/internal/catalog"
	"expensed/internal/services"
	"expensed/internal/storage"
	"expensed/internal/tools"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	registry := tools.NewRegistry()
	tools.RegisterExpenseTools(registry, services.NewExpenseService(store, nil))

	return NewServer(":0", registry, catalog.Load(""))
}

func callTool(t *testing.T, srv *Server, body string) (*httptest.ResponseRecorder, ToolCallResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/call_tool", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler.ServeHTTP(rr, req)

	var resp ToolCallResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return rr, resp
}

func TestRootStatus(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "running" {
		t.Errorf("body = %v", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rr.Code)
		}
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}

	var cats map[string][]string
	if err := json.Unmarshal(rr.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(cats) != 10 {
		t.Errorf("default catalog has %d categories, want 10", len(cats))
	}
}

func TestCallToolUnknownNameIs404(t *testing.T) {
	srv := newTestServer(t)

	rr, resp := callTool(t, srv, `{"name": "mint_money", "arguments": {}}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if resp.Error != "Tool 'mint_money' not found" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestCallToolAddAndSummarize(t *testing.T) {
	srv := newTestServer(t)

	rr, resp := callTool(t, srv, `{"name": "add_expense", "arguments": {"date": "2024-03-01", "amount": 42.5, "category": "food"}}`)
	if rr.Code != http.StatusOK || !resp.Success {
		t.Fatalf("add failed: %d %+v", rr.Code, resp)
	}
	result := resp.Result.(map[string]any)
	if result["status"] != "success" {
		t.Fatalf("result = %v", result)
	}
	if result["message"] != "Expense of $42.50 for food added successfully" {
		t.Errorf("message = %v", result["message"])
	}

	rr, resp = callTool(t, srv, `{"name": "summarize_expenses", "arguments": {"start_date": "2024-03-01", "end_date": "2024-03-31"}}`)
	if rr.Code != http.StatusOK || !resp.Success {
		t.Fatalf("summarize failed: %d %+v", rr.Code, resp)
	}
	summary := resp.Result.(map[string]any)
	if summary["total"] != 42.5 {
		t.Errorf("total = %v", summary["total"])
	}
	if summary["period"] != "2024-03-01 to 2024-03-31" {
		t.Errorf("period = %v", summary["period"])
	}
}

func TestCallToolValidationIsStructuredResult(t *testing.T) {
	srv := newTestServer(t)

	// Bad input is a successful dispatch with an error-shaped result.
	rr, resp := callTool(t, srv, `{"name": "add_expense", "arguments": {"date": "2024-03-01", "amount": -1, "category": "food"}}`)
	if rr.Code != http.StatusOK || !resp.Success {
		t.Fatalf("dispatch should succeed: %d %+v", rr.Code, resp)
	}
	result := resp.Result.(map[string]any)
	if result["status"] != "error" || result["message"] != "Validation error: amount" {
		t.Errorf("result = %v", result)
	}
}

func TestCallToolDispatchErrorIsFolded(t *testing.T) {
	srv := newTestServer(t)

	rr, resp := callTool(t, srv, `{"name": "delete_expense", "arguments": {"expense_id": "abc"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("dispatch errors should fold into the envelope: %+v", resp)
	}
}

func TestCallToolBadJSON(t *testing.T) {
	srv := newTestServer(t)

	rr, resp := callTool(t, srv, `{"name": `)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp.Success {
		t.Error("success should be false")
	}
}

func TestCallToolMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/call_tool", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/call_tool", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
