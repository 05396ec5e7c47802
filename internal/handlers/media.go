package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"virtual-museum/internal/database"
	"virtual-museum/internal/logging"
	"virtual-museum/internal/mediatypes"
)

// MediaRequest is the body for manual media creation, used when an
// item lives at a remote URL rather than in the library on disk.
type MediaRequest struct {
	RoomID string `json:"roomId"`
	URL    string `json:"url"`
	Type   string `json:"type"`
}

// CreateMedia attaches a media item to a room by URL.
func (h *Handlers) CreateMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.RoomID == "" || req.URL == "" || req.Type == "" {
		writeJSONError(w, "roomId, url and type are required", http.StatusBadRequest)
		return
	}

	mediaType := mediatypes.MediaType(req.Type)
	if !mediaType.Valid() {
		writeJSONError(w, "type must be image or video", http.StatusBadRequest)
		return
	}

	if _, err := h.db.GetRoomByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, "Room not found", http.StatusNotFound)
			return
		}
		logging.Error("Failed to look up room %s: %v", req.RoomID, err)
		writeJSONError(w, "Failed to create media", http.StatusInternalServerError)
		return
	}

	item, err := h.db.CreateMedia(ctx, database.NewMedia{
		RoomID: req.RoomID,
		URL:    req.URL,
		Type:   mediaType,
	})
	if errors.Is(err, database.ErrConflict) {
		writeJSONError(w, "Media with this URL already exists", http.StatusConflict)
		return
	}
	if err != nil {
		logging.Error("Failed to create media: %v", err)
		writeJSONError(w, "Failed to create media", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, item)
}

// DeleteMedia removes a single media record. The underlying file, if
// any, stays on disk.
func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.db.DeleteMedia(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeJSONError(w, "Media not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Failed to delete media %s: %v", id, err)
		writeJSONError(w, "Failed to delete media", http.StatusInternalServerError)
		return
	}

	writeJSONSuccess(w)
}
