package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"virtual-museum/internal/logging"
	"virtual-museum/internal/reconciler"
)

// SyncResponse is the result of a media library sync.
type SyncResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Logs    []string `json:"logs"`
}

// SyncMedia walks the media library and inserts any files not yet
// known to the database. Concurrent requests are serialized by the
// reconciler itself.
func (h *Handlers) SyncMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.reconciler.Run(ctx)
	if errors.Is(err, reconciler.ErrRootNotFound) {
		writeJSONError(w, "Media directory not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Media sync failed: %v", err)
		writeJSONError(w, "Sync failed", http.StatusInternalServerError)
		return
	}

	h.db.RefreshLibraryMetrics(ctx)

	logging.Info("Media sync complete: %d added, %d skipped", result.Added, result.Skipped)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, SyncResponse{
		Success: true,
		Message: fmt.Sprintf("Sync complete! Added: %d, Skipped: %d", result.Added, result.Skipped),
		Added:   result.Added,
		Skipped: result.Skipped,
		Logs:    result.Logs,
	})
}
