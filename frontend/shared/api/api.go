// Package api holds the JSON envelope helpers shared by the catalog
// handlers. Every response carries a status field:
// {"status":"success"|"error", ...}.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", slog.Any("err", err))
	}
}

// Message writes a success envelope with a human-readable message.
func Message(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "message": message})
}

// Error writes an error envelope. Used for validation notices and the
// "no results" style messages the UI surfaces directly.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{"status": "error", "message": message})
}

// Decode reads a size-capped JSON request body into v.
func Decode(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
