package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"virtual-museum/internal/database"
)

func TestCreateRoom(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(t, env.h.CreateRoom, http.MethodPost, "/api/rooms", RoomRequest{Name: "Our First Date"})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var room database.Room
	decodeJSON(t, w, &room)
	if room.Slug != "our-first-date" {
		t.Errorf("slug = %q, want our-first-date", room.Slug)
	}
	if room.ID == "" {
		t.Error("room id should be assigned")
	}
}

func TestCreateRoomValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body RoomRequest
	}{
		{"empty name", RoomRequest{Name: ""}},
		{"whitespace name", RoomRequest{Name: "   "}},
		{"symbols only", RoomRequest{Name: "!!! ???"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, env.h.CreateRoom, http.MethodPost, "/api/rooms", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestCreateRoomDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "Our First Date", "our-first-date")

	// Different casing, same slug.
	w := doJSON(t, env.h.CreateRoom, http.MethodPost, "/api/rooms", RoomRequest{Name: "our FIRST date"})

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestListRoomsWithCounts(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")
	env.createRoom(t, "Empty", "empty")

	for _, url := range []string{"/media/trip/a.jpg", "/media/trip/b.mp4"} {
		if _, err := env.db.CreateMedia(context.Background(), database.NewMedia{
			RoomID: room.ID, URL: url, Type: "image",
		}); err != nil {
			t.Fatal(err)
		}
	}

	w := doJSON(t, env.h.ListRooms, http.MethodGet, "/api/rooms", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var rooms []database.RoomSummary
	decodeJSON(t, w, &rooms)
	if len(rooms) != 2 {
		t.Fatalf("len(rooms) = %d, want 2", len(rooms))
	}

	counts := map[string]int{}
	for _, r := range rooms {
		counts[r.Slug] = r.MediaCount
	}
	if counts["trip"] != 2 || counts["empty"] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestGetRoomWithMedia(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")
	if _, err := env.db.CreateMedia(context.Background(), database.NewMedia{
		RoomID: room.ID, URL: "/media/trip/a.jpg", Type: "image",
	}); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/rooms/trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "trip"})
	w := httptest.NewRecorder()
	env.h.GetRoom(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var detail RoomDetail
	decodeJSON(t, w, &detail)
	if detail.Slug != "trip" {
		t.Errorf("slug = %q", detail.Slug)
	}
	if len(detail.Media) != 1 || detail.Media[0].URL != "/media/trip/a.jpg" {
		t.Errorf("media = %+v", detail.Media)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/api/rooms/ghost", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "ghost"})
	w := httptest.NewRecorder()
	env.h.GetRoom(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateRoomRecomputesSlug(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "Trip", "trip")

	r := httptest.NewRequest(http.MethodPut, "/api/rooms/trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "trip"})
	w := doJSONWithVars(t, env.h.UpdateRoom, r, RoomRequest{Name: "Summer Trip"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var updated database.Room
	decodeJSON(t, w, &updated)
	if updated.Slug != "summer-trip" {
		t.Errorf("slug = %q, want summer-trip", updated.Slug)
	}

	// The old slug no longer resolves.
	if _, err := env.db.GetRoomBySlug(context.Background(), "trip"); err == nil {
		t.Error("old slug should be gone")
	}
}

func TestUpdateRoomConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "Taken", "taken")
	env.createRoom(t, "Trip", "trip")

	r := httptest.NewRequest(http.MethodPut, "/api/rooms/trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "trip"})
	w := doJSONWithVars(t, env.h.UpdateRoom, r, RoomRequest{Name: "Taken"})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestUpdateRoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodPut, "/api/rooms/ghost", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "ghost"})
	w := doJSONWithVars(t, env.h.UpdateRoom, r, RoomRequest{Name: "Whatever"})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRoomLifecycleBySlug(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "Trip", "trip")

	// Rename through the current slug.
	r := httptest.NewRequest(http.MethodPut, "/api/rooms/trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "trip"})
	w := doJSONWithVars(t, env.h.UpdateRoom, r, RoomRequest{Name: "Summer Trip"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body.String())
	}

	// The old slug stops resolving for updates too.
	r = httptest.NewRequest(http.MethodPut, "/api/rooms/trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "trip"})
	w = doJSONWithVars(t, env.h.UpdateRoom, r, RoomRequest{Name: "Anything"})
	if w.Code != http.StatusNotFound {
		t.Errorf("update via stale slug: status = %d, want 404", w.Code)
	}

	// Delete through the new slug.
	r = httptest.NewRequest(http.MethodDelete, "/api/rooms/summer-trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "summer-trip"})
	w2 := httptest.NewRecorder()
	env.h.DeleteRoom(w2, r)
	if w2.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", w2.Code, w2.Body.String())
	}

	if _, err := env.db.GetRoomBySlug(context.Background(), "summer-trip"); err == nil {
		t.Error("room should be gone")
	}
}

func TestDeleteRoomCascadesMedia(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Trip", "trip")
	keep := env.createRoom(t, "Keep", "keep")

	ctx := context.Background()
	if _, err := env.db.CreateMedia(ctx, database.NewMedia{
		RoomID: room.ID, URL: "/media/trip/a.jpg", Type: "image",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.db.CreateMedia(ctx, database.NewMedia{
		RoomID: keep.ID, URL: "/media/keep/b.jpg", Type: "image",
	}); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/rooms/trip", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "trip"})
	w := httptest.NewRecorder()
	env.h.DeleteRoom(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	// Media of the deleted room is gone; the other room's survives.
	gone, err := env.db.ListMediaByRoom(ctx, room.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gone) != 0 {
		t.Errorf("orphaned media left behind: %+v", gone)
	}

	kept, err := env.db.ListMediaByRoom(ctx, keep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 1 {
		t.Errorf("unrelated media lost: %+v", kept)
	}
}

func TestDeleteRoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodDelete, "/api/rooms/ghost", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "ghost"})
	w := httptest.NewRecorder()
	env.h.DeleteRoom(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
