package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"virtual-museum/internal/database"
)

func TestCreateMediaAttachesToRoom(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")

	w := doJSON(t, env.h.CreateMedia, http.MethodPost, "/api/media", MediaRequest{
		RoomID: room.ID,
		URL:    "https://cdn.example.com/beach.jpg",
		Type:   "image",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var item database.Media
	decodeJSON(t, w, &item)
	if item.RoomID != room.ID {
		t.Errorf("roomId = %q", item.RoomID)
	}
	if item.ID == "" {
		t.Error("media id should be assigned")
	}
}

func TestCreateMediaValidation(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")

	tests := []struct {
		name       string
		body       MediaRequest
		wantStatus int
	}{
		{"missing url", MediaRequest{RoomID: room.ID, Type: "image"}, http.StatusBadRequest},
		{"missing room", MediaRequest{URL: "/x.jpg", Type: "image"}, http.StatusBadRequest},
		{"missing type", MediaRequest{RoomID: room.ID, URL: "/x.jpg"}, http.StatusBadRequest},
		{"bogus type", MediaRequest{RoomID: room.ID, URL: "/x.jpg", Type: "audio"}, http.StatusBadRequest},
		{"unknown room", MediaRequest{RoomID: "ghost", URL: "/x.jpg", Type: "image"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, env.h.CreateMedia, http.MethodPost, "/api/media", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestCreateMediaDuplicateURL(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")

	body := MediaRequest{RoomID: room.ID, URL: "/media/trip/a.jpg", Type: "image"}

	if w := doJSON(t, env.h.CreateMedia, http.MethodPost, "/api/media", body); w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", w.Code)
	}
	if w := doJSON(t, env.h.CreateMedia, http.MethodPost, "/api/media", body); w.Code != http.StatusConflict {
		t.Errorf("second create: status = %d, want 409", w.Code)
	}
}

func TestDeleteMedia(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")

	item, err := env.db.CreateMedia(context.Background(), database.NewMedia{
		RoomID: room.ID, URL: "/media/trip/a.jpg", Type: "image",
	})
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/media/"+item.ID, nil)
	r = mux.SetURLVars(r, map[string]string{"id": item.ID})
	w := httptest.NewRecorder()
	env.h.DeleteMedia(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	remaining, err := env.db.ListMediaByRoom(context.Background(), room.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("media not deleted: %+v", remaining)
	}
}

func TestDeleteMediaNotFound(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodDelete, "/api/media/ghost", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "ghost"})
	w := httptest.NewRecorder()
	env.h.DeleteMedia(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
