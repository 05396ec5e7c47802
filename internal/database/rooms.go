package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateRoom inserts a new room. Returns ErrConflict if the slug is
// already taken.
func (d *Database) CreateRoom(ctx context.Context, name, slug, coverImage string) (*Room, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_room", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	room := &Room{
		ID:         uuid.NewString(),
		Name:       name,
		Slug:       slug,
		CoverImage: coverImage,
		CreatedAt:  time.Now(),
	}

	_, err = d.db.ExecContext(ctx,
		"INSERT INTO rooms (id, name, slug, cover_image, created_at) VALUES (?, ?, ?, ?, ?)",
		room.ID, room.Name, room.Slug, room.CoverImage, room.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrConflict
			return nil, err
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

// GetRoomBySlug retrieves a room by its slug. Returns ErrNotFound if no
// room has that slug.
func (d *Database) GetRoomBySlug(ctx context.Context, slug string) (*Room, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_room_by_slug", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.getRoom(ctx, "SELECT id, name, slug, cover_image, created_at FROM rooms WHERE slug = ?", slug)
}

// GetRoomByID retrieves a room by its id. Returns ErrNotFound if no room
// has that id.
func (d *Database) GetRoomByID(ctx context.Context, id string) (*Room, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_room_by_id", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.getRoom(ctx, "SELECT id, name, slug, cover_image, created_at FROM rooms WHERE id = ?", id)
}

func (d *Database) getRoom(ctx context.Context, query string, arg string) (*Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var room Room
	var createdAt int64

	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&room.ID, &room.Name, &room.Slug, &room.CoverImage, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	room.CreatedAt = time.Unix(createdAt, 0)
	return &room, nil
}

// ListRooms returns all rooms with their media counts, newest first.
func (d *Database) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_rooms", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	SELECT r.id, r.name, r.slug, r.cover_image, r.created_at, COUNT(m.id)
	FROM rooms r
	LEFT JOIN media m ON m.room_id = r.id
	GROUP BY r.id
	ORDER BY r.created_at DESC, r.rowid DESC
	`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	summaries := []RoomSummary{}
	for rows.Next() {
		var s RoomSummary
		var createdAt int64
		if err = rows.Scan(&s.ID, &s.Name, &s.Slug, &s.CoverImage, &createdAt, &s.MediaCount); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("room iteration error: %w", err)
	}

	return summaries, nil
}

// UpdateRoom updates a room's name, slug, and cover image. Returns
// ErrNotFound if the room does not exist and ErrConflict if the new slug
// belongs to another room.
func (d *Database) UpdateRoom(ctx context.Context, id, name, slug, coverImage string) (*Room, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("update_room", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx,
		"UPDATE rooms SET name = ?, slug = ?, cover_image = ? WHERE id = ?",
		name, slug, coverImage, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrConflict
			return nil, err
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		err = ErrNotFound
		return nil, err
	}

	return d.getRoom(ctx, "SELECT id, name, slug, cover_image, created_at FROM rooms WHERE id = ?", id)
}

// DeleteRoom removes a room and, via the foreign key cascade, all of its
// media. Returns ErrNotFound if the room does not exist.
func (d *Database) DeleteRoom(ctx context.Context, id string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_room", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		err = ErrNotFound
		return err
	}

	return nil
}
