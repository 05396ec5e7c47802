package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"virtual-museum/internal/database"
	"virtual-museum/internal/logging"
	"virtual-museum/internal/mediatypes"
)

// maxUploadSize bounds in-memory multipart parsing; larger files spill
// to disk.
const maxUploadSize = 32 << 20

// UploadMedia stores an uploaded file in the room's library directory
// and records it, so a later sync sees it as already present.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roomID := r.URL.Query().Get("roomId")
	if roomID == "" {
		writeJSONError(w, "roomId query parameter is required", http.StatusBadRequest)
		return
	}

	room, err := h.db.GetRoomByID(ctx, roomID)
	if errors.Is(err, database.ErrNotFound) {
		writeJSONError(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Failed to look up room %s: %v", roomID, err)
		writeJSONError(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSONError(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Strip any client-supplied directory components.
	filename := filepath.Base(header.Filename)
	if filename == "." || filename == "/" || strings.HasPrefix(filename, ".") {
		writeJSONError(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	mediaType := mediatypes.Classify(filename)
	if mediaType == mediatypes.TypeOther {
		writeJSONError(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	roomDir := filepath.Join(h.mediaDir, room.Slug)
	if err := os.MkdirAll(roomDir, 0o755); err != nil {
		logging.Error("Failed to create room directory %s: %v", roomDir, err)
		writeJSONError(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	destPath := filepath.Join(roomDir, filename)
	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			writeJSONError(w, "A file with this name already exists", http.StatusConflict)
			return
		}
		logging.Error("Failed to create file %s: %v", destPath, err)
		writeJSONError(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	if _, err := io.Copy(dest, file); err != nil {
		dest.Close()
		os.Remove(destPath)
		logging.Error("Failed to write upload %s: %v", destPath, err)
		writeJSONError(w, "Upload failed", http.StatusInternalServerError)
		return
	}
	if err := dest.Close(); err != nil {
		os.Remove(destPath)
		logging.Error("Failed to flush upload %s: %v", destPath, err)
		writeJSONError(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	url := path.Join("/", filepath.Base(h.mediaDir), room.Slug, filename)
	item, err := h.db.CreateMedia(ctx, database.NewMedia{
		RoomID:    room.ID,
		URL:       url,
		Type:      mediaType,
		SourceDir: room.Slug,
	})
	if errors.Is(err, database.ErrConflict) {
		// File landed on disk but the record already existed; keep the
		// file and report the conflict.
		writeJSONError(w, "Media with this URL already exists", http.StatusConflict)
		return
	}
	if err != nil {
		os.Remove(destPath)
		logging.Error("Failed to record upload: %v", err)
		writeJSONError(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	logging.Info("Uploaded %s to room %q", filename, room.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, item)
}
