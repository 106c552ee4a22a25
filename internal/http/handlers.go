package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"expensed/internal/tools"
)

// ToolCallRequest is the body of POST /call_tool.
type ToolCallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolCallResponse wraps every tool outcome. Failures are normal-shaped
// payloads; the transport never surfaces a crash.
type ToolCallResponse struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Expense Tracker HTTP API",
		"status":  "running",
	})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, ToolCallResponse{
			Success: false,
			Error:   "method not allowed",
		})
		return
	}

	var req ToolCallRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ToolCallResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request body: %v", err),
		})
		return
	}

	result, err := s.registry.Call(r.Context(), req.Name, req.Arguments)
	if errors.Is(err, tools.ErrUnknownTool) {
		writeJSON(w, http.StatusNotFound, ToolCallResponse{
			Success: false,
			Error:   fmt.Sprintf("Tool '%s' not found", req.Name),
		})
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Tool call failed",
			"tool", req.Name,
			"error", err)
		writeJSON(w, http.StatusOK, ToolCallResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ToolCallResponse{Success: true, Result: result})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.catalog.JSON())
}
