// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the error shape for requests rejected before reaching an
// operation (rate limiting, panics).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// WriteJSONObject marshals a Go value to JSON and writes it.
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// WriteError sends a failure envelope with a machine-readable code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSONObject(w, status, ErrorResponse{Success: false, Error: message, Code: code})
}
