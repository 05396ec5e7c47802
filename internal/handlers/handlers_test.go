package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"virtual-museum/internal/auth"
	"virtual-museum/internal/database"
	"virtual-museum/internal/reconciler"
	"virtual-museum/internal/startup"
)

const testPassword = "sekrit"

// testEnv wires handlers against a real sqlite database and a temp
// media directory.
type testEnv struct {
	h        *Handlers
	db       *database.Database
	mediaDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	mediaDir := filepath.Join(t.TempDir(), "media")
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		t.Fatal(err)
	}

	db, err := database.New(context.Background(), filepath.Join(dataDir, "museum.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	verifier, err := auth.NewPasswordVerifier(testPassword, "")
	if err != nil {
		t.Fatal(err)
	}

	config := &startup.Config{
		MediaDir:          mediaDir,
		ThumbnailDir:      filepath.Join(dataDir, "thumbnails"),
		ThumbnailsEnabled: true,
	}

	rec := reconciler.New(db, mediaDir)
	h := New(db, rec, &auth.StoreSessions{DB: db}, verifier, config)

	return &testEnv{h: h, db: db, mediaDir: mediaDir}
}

// createRoom inserts a room directly through the store.
func (e *testEnv) createRoom(t *testing.T, name, slug string) *database.Room {
	t.Helper()
	room, err := e.db.CreateRoom(context.Background(), name, slug, "")
	if err != nil {
		t.Fatalf("creating room %q: %v", name, err)
	}
	return room
}

// doJSON performs a request with a JSON body against handler.
func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, target, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

// doJSONWithVars attaches a JSON body to an already-built request
// (typically one carrying mux vars) and runs it through handler.
func doJSONWithVars(t *testing.T, handler http.HandlerFunc, r *http.Request, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

// decodeJSON unmarshals a recorded response body into v.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}
