// Package handler provides the HTTP handlers for the review API and the MCP
// protocol surface.
package handler

import (
	"encoding/json"
	"net/http"
)

// sessionHeader carries the caller-supplied session id.
const sessionHeader = "X-Session-Id"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
