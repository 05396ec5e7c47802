package handlers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"virtual-museum/internal/logging"
	"virtual-museum/internal/mediatypes"
)

// GetThumbnail serves a cached thumbnail for a library file. When
// thumbnails are disabled the client is redirected to the full asset.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	rawPath := mux.Vars(r)["path"]

	// Normalize and refuse anything that escapes the media root.
	cleaned := path.Clean("/" + rawPath)
	if strings.Contains(cleaned, "..") {
		writeJSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(h.mediaDir, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(filePath, filepath.Clean(h.mediaDir)+string(os.PathSeparator)) {
		writeJSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}

	mediaType := mediatypes.Classify(filePath)
	if mediaType == mediatypes.TypeOther {
		writeJSONError(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	if !h.thumbGen.IsEnabled() {
		http.Redirect(w, r, path.Join("/", filepath.Base(h.mediaDir), cleaned), http.StatusFound)
		return
	}

	data, err := h.thumbGen.GetThumbnail(filePath, mediaType)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSONError(w, "File not found", http.StatusNotFound)
			return
		}
		logging.Debug("Thumbnail generation failed for %s: %v", filePath, err)
		// Fall back to the full asset rather than a broken image.
		http.Redirect(w, r, path.Join("/", filepath.Base(h.mediaDir), cleaned), http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		logging.Debug("Failed to write thumbnail response: %v", err)
	}
}
