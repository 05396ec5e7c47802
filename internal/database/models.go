package database

import (
	"time"

	"virtual-museum/internal/mediatypes"
)

// Room is a named collection of media items, addressed by a unique slug.
type Room struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CoverImage string    `json:"coverImage,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RoomSummary is a Room together with its media count, as returned by
// the room listing.
type RoomSummary struct {
	Room
	MediaCount int `json:"mediaCount"`
}

// Media is a single image or video asset owned by exactly one room.
//
// SourceDir records which on-disk room directory the record was synced
// from; it is empty for media created through the API or an upload.
// URL is unique across the whole store.
type Media struct {
	ID        string               `json:"id"`
	RoomID    string               `json:"roomId"`
	URL       string               `json:"url"`
	Type      mediatypes.MediaType `json:"type"`
	SourceDir string               `json:"-"`
	CreatedAt time.Time            `json:"createdAt"`
}

// NewMedia describes a media record to be inserted. The ID is assigned
// by the store.
type NewMedia struct {
	RoomID    string
	URL       string
	Type      mediatypes.MediaType
	SourceDir string
}
