package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"ponto/internal/core"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"erro": msg}
}

// respondError maps validation failures to 422 with the human-readable
// message; everything else is a 500 that hides the internals.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if core.IsValidation(err) {
		respondJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"method", r.Method,
		"url", r.URL.Path)
	respondJSON(w, http.StatusInternalServerError, errorBody("erro interno"))
}

// parseIntQuery reads an integer query parameter, 0 when absent or not a
// number. The ledger treats 0 as "current month/year".
func parseIntQuery(r *http.Request, name string) int {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
