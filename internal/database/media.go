package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"virtual-museum/internal/logging"
	"virtual-museum/internal/mediatypes"
)

// CreateMedia inserts a single media record. Returns ErrConflict if the
// URL is already recorded.
func (d *Database) CreateMedia(ctx context.Context, item NewMedia) (*Media, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_media", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	media := &Media{
		ID:        uuid.NewString(),
		RoomID:    item.RoomID,
		URL:       item.URL,
		Type:      item.Type,
		SourceDir: item.SourceDir,
		CreatedAt: time.Now(),
	}

	_, err = d.db.ExecContext(ctx,
		"INSERT INTO media (id, room_id, url, type, source_dir, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		media.ID, media.RoomID, media.URL, string(media.Type), media.SourceDir, media.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrConflict
			return nil, err
		}
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	return media, nil
}

// DeleteMedia removes a single media record by id. Returns ErrNotFound
// if no such record exists.
func (d *Database) DeleteMedia(ctx context.Context, id string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_media", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
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

// ListMediaByRoom returns all media owned by a room in insertion order.
func (d *Database) ListMediaByRoom(ctx context.Context, roomID string) ([]Media, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_media_by_room", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	SELECT id, room_id, url, type, source_dir, created_at
	FROM media WHERE room_id = ?
	ORDER BY rowid ASC
	`

	rows, err := d.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	items := []Media{}
	for rows.Next() {
		var m Media
		var mediaType string
		var createdAt int64
		if err = rows.Scan(&m.ID, &m.RoomID, &m.URL, &mediaType, &m.SourceDir, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		m.Type = mediatypes.MediaType(mediaType)
		m.CreatedAt = time.Unix(createdAt, 0)
		items = append(items, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("media iteration error: %w", err)
	}

	return items, nil
}

// ListMediaURLsBySource returns the set of media URLs recorded for a
// room from a specific source directory. Media created through other
// channels (uploads, direct API calls) carry an empty source_dir and are
// deliberately excluded so the sync never treats them as covering an
// on-disk file.
func (d *Database) ListMediaURLsBySource(ctx context.Context, roomID, sourceDir string) (map[string]bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_media_urls_by_source", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx,
		"SELECT url FROM media WHERE room_id = ? AND source_dir = ?",
		roomID, sourceDir,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list media urls: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	urls := make(map[string]bool)
	for rows.Next() {
		var url string
		if err = rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan media url: %w", err)
		}
		urls[url] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("media url iteration error: %w", err)
	}

	return urls, nil
}

// BulkCreateMedia inserts a batch of media records inside a single
// transaction with duplicate-skip semantics: a row whose URL is already
// recorded is silently dropped from the insert instead of failing the
// batch. Returns the number of rows actually inserted, which may be
// fewer than len(items) when a concurrent writer got there first.
func (d *Database) BulkCreateMedia(ctx context.Context, items []NewMedia) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	start := time.Now()
	var err error
	defer func() { recordQuery("bulk_create_media", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk insert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO media (id, room_id, url, type, source_dir, created_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		rollback(tx)
		return 0, fmt.Errorf("failed to prepare bulk insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Debug("failed to close bulk insert statement: %v", closeErr)
		}
	}()

	now := time.Now().Unix()
	var inserted int64

	for _, item := range items {
		result, execErr := stmt.ExecContext(ctx,
			uuid.NewString(), item.RoomID, item.URL, string(item.Type), item.SourceDir, now,
		)
		if execErr != nil {
			rollback(tx)
			err = fmt.Errorf("failed to insert media %s: %w", item.URL, execErr)
			return 0, err
		}
		rows, raErr := result.RowsAffected()
		if raErr != nil {
			rollback(tx)
			err = fmt.Errorf("failed to read bulk insert result: %w", raErr)
			return 0, err
		}
		inserted += rows
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}

	return inserted, nil
}

func rollback(tx interface{ Rollback() error }) {
	if err := tx.Rollback(); err != nil {
		logging.Error("bulk insert rollback failed: %v", err)
	}
}
