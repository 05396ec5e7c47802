package handlers

import (
	"encoding/json"
	"net/http"

	"virtual-museum/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeJSONSuccess writes the bare success envelope used by delete
// endpoints.
func writeJSONSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]bool{"success": true})
}
