package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"virtual-museum/internal/database"
	"virtual-museum/internal/logging"
	"virtual-museum/internal/slug"
)

// RoomRequest is the body for room create and update calls.
type RoomRequest struct {
	Name       string `json:"name"`
	CoverImage string `json:"coverImage"`
}

// RoomDetail is a room together with its full media list.
type RoomDetail struct {
	database.Room
	Media []database.Media `json:"media"`
}

// ListRooms returns all rooms with their media counts, newest first.
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.db.ListRooms(r.Context())
	if err != nil {
		logging.Error("Failed to list rooms: %v", err)
		writeJSONError(w, "Failed to list rooms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, rooms)
}

// CreateRoom creates a room, deriving its slug from the name.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSONError(w, "Room name is required", http.StatusBadRequest)
		return
	}

	roomSlug := slug.Make(name)
	if roomSlug == "" {
		writeJSONError(w, "Room name must contain letters or digits", http.StatusBadRequest)
		return
	}

	room, err := h.db.CreateRoom(r.Context(), name, roomSlug, req.CoverImage)
	if errors.Is(err, database.ErrConflict) {
		writeJSONError(w, "A room with this name already exists", http.StatusConflict)
		return
	}
	if err != nil {
		logging.Error("Failed to create room: %v", err)
		writeJSONError(w, "Failed to create room", http.StatusInternalServerError)
		return
	}

	logging.Info("Room created: %q (slug: %s)", room.Name, room.Slug)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, room)
}

// GetRoom returns a single room by slug together with its media list.
func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomSlug := mux.Vars(r)["slug"]

	room, err := h.db.GetRoomBySlug(ctx, roomSlug)
	if errors.Is(err, database.ErrNotFound) {
		writeJSONError(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Failed to get room %q: %v", roomSlug, err)
		writeJSONError(w, "Failed to get room", http.StatusInternalServerError)
		return
	}

	items, err := h.db.ListMediaByRoom(ctx, room.ID)
	if err != nil {
		logging.Error("Failed to list media for room %s: %v", room.ID, err)
		writeJSONError(w, "Failed to get room", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, RoomDetail{Room: *room, Media: items})
}

// UpdateRoom renames a room or changes its cover image. The room is
// addressed by its current slug; the new slug is recomputed from the
// new name, and media records keep pointing at the room by id.
func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	currentSlug := mux.Vars(r)["slug"]

	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSONError(w, "Room name is required", http.StatusBadRequest)
		return
	}

	newSlug := slug.Make(name)
	if newSlug == "" {
		writeJSONError(w, "Room name must contain letters or digits", http.StatusBadRequest)
		return
	}

	existing, err := h.db.GetRoomBySlug(ctx, currentSlug)
	if errors.Is(err, database.ErrNotFound) {
		writeJSONError(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Failed to get room %q: %v", currentSlug, err)
		writeJSONError(w, "Failed to update room", http.StatusInternalServerError)
		return
	}

	room, err := h.db.UpdateRoom(ctx, existing.ID, name, newSlug, req.CoverImage)
	if errors.Is(err, database.ErrNotFound) {
		writeJSONError(w, "Room not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, database.ErrConflict) {
		writeJSONError(w, "A room with this name already exists", http.StatusConflict)
		return
	}
	if err != nil {
		logging.Error("Failed to update room %q: %v", currentSlug, err)
		writeJSONError(w, "Failed to update room", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, room)
}

// DeleteRoom removes a room, addressed by slug, and through the
// foreign key cascade all of its media records.
func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomSlug := mux.Vars(r)["slug"]

	room, err := h.db.GetRoomBySlug(ctx, roomSlug)
	if errors.Is(err, database.ErrNotFound) {
		writeJSONError(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Failed to get room %q: %v", roomSlug, err)
		writeJSONError(w, "Failed to delete room", http.StatusInternalServerError)
		return
	}

	if err := h.db.DeleteRoom(ctx, room.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, "Room not found", http.StatusNotFound)
			return
		}
		logging.Error("Failed to delete room %q: %v", roomSlug, err)
		writeJSONError(w, "Failed to delete room", http.StatusInternalServerError)
		return
	}

	logging.Info("Room deleted: %q (slug: %s)", room.Name, room.Slug)
	writeJSONSuccess(w)
}
