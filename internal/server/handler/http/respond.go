// Package http provides the HTTP handlers and routing of the complaint
// service.
package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as the JSON response body with the given status
// code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {status:"error", message} envelope every
// endpoint uses for failures.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{
		"status":  "error",
		"message": message,
	})
}
