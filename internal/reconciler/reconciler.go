package reconciler

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sync"
	"time"

	"virtual-museum/internal/database"
	"virtual-museum/internal/logging"
	"virtual-museum/internal/metrics"
)

// Store is the slice of the persistence layer the reconciler needs.
type Store interface {
	GetRoomBySlug(ctx context.Context, slug string) (*database.Room, error)
	ListMediaURLsBySource(ctx context.Context, roomID, sourceDir string) (map[string]bool, error)
	BulkCreateMedia(ctx context.Context, items []database.NewMedia) (int64, error)
}

// Result summarizes one reconciliation run.
type Result struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Logs    []string `json:"logs"`
}

// Reconciler brings the media table into agreement with the files on
// disk under the media root. It only ever inserts missing records; it
// never deletes or rewrites existing ones.
type Reconciler struct {
	store     Store
	mediaRoot string
	rootName  string

	runMu       sync.Mutex
	stateMu     sync.Mutex
	lastRunTime time.Time
}

// New creates a Reconciler for the given media root. The root's base
// name becomes the leading URL segment of every synced media record,
// e.g. /memories/<slug>/<file> for a root ending in "memories".
func New(store Store, mediaRoot string) *Reconciler {
	return &Reconciler{
		store:     store,
		mediaRoot: mediaRoot,
		rootName:  filepath.Base(mediaRoot),
	}
}

// Run performs one reconciliation pass over every room directory.
//
// Per-room failures (unknown slug, unreadable directory, insert errors)
// become log lines in the Result and never abort the run; the only hard
// failure is a missing media root, reported as ErrRootNotFound. Run is
// serialized: concurrent calls queue behind each other, and correctness
// against concurrent uploads rests on the store's duplicate-skip insert,
// not on the pre-filter here.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	metrics.SyncIsRunning.Set(1)
	defer metrics.SyncIsRunning.Set(0)
	metrics.SyncRunsTotal.Inc()

	start := time.Now()
	logging.Info("Starting media sync from %s", r.mediaRoot)

	dirs, err := scanRoomDirs(r.mediaRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{Logs: []string{}}
	result.log("Found %d folders in /%s", len(dirs), r.rootName)

	for _, dir := range dirs {
		r.syncRoomDir(ctx, dir, result)
	}

	duration := time.Since(start)
	r.stateMu.Lock()
	r.lastRunTime = time.Now()
	r.stateMu.Unlock()

	metrics.SyncLastRunTimestamp.Set(float64(time.Now().Unix()))
	metrics.SyncLastRunDuration.Set(duration.Seconds())
	metrics.SyncMediaAdded.Add(float64(result.Added))
	metrics.SyncMediaSkipped.Add(float64(result.Skipped))

	logging.Info("Media sync complete: added %d, skipped %d in %v",
		result.Added, result.Skipped, duration)

	return result, nil
}

// syncRoomDir reconciles a single room directory. All failures are
// absorbed into result.Logs.
func (r *Reconciler) syncRoomDir(ctx context.Context, dir roomDir, result *Result) {
	room, err := r.store.GetRoomBySlug(ctx, dir.Name)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			result.log("Room not found for folder: %q. Skipping.", dir.Name)
			metrics.SyncRoomsUnmatched.Inc()
		} else {
			result.log("Error looking up room for folder %q: %v", dir.Name, err)
			logging.Error("room lookup failed during sync: %v", err)
		}
		return
	}

	result.log("Found room for folder: %q (id: %s)", dir.Name, room.ID)

	existing, err := r.store.ListMediaURLsBySource(ctx, room.ID, dir.Name)
	if err != nil {
		result.log("Error loading existing media for %q: %v", dir.Name, err)
		logging.Error("existing media lookup failed during sync: %v", err)
		return
	}

	files, err := scanMediaFiles(dir.Path)
	if err != nil {
		result.log("Error reading folder %q: %v", dir.Name, err)
		logging.Error("directory read failed during sync: %v", err)
		return
	}

	var pending []database.NewMedia
	for _, file := range files {
		if !file.Type.Valid() {
			result.log("  - Skipping unknown file type: %s", file.Name)
			continue
		}

		url := path.Join("/", r.rootName, dir.Name, file.Name)
		if existing[url] {
			// Already-known files are counted but not logged.
			result.Skipped++
			continue
		}

		pending = append(pending, database.NewMedia{
			RoomID:    room.ID,
			URL:       url,
			Type:      file.Type,
			SourceDir: dir.Name,
		})
		result.log("  + Prepared to add: %s", file.Name)
	}

	if len(pending) == 0 {
		result.log("  - No new items to insert.")
		return
	}

	inserted, err := r.store.BulkCreateMedia(ctx, pending)
	if err != nil {
		result.log("  Error batch inserting for %q: %v", dir.Name, err)
		logging.Error("bulk insert failed during sync: %v", err)
		return
	}

	result.Added += int(inserted)
	result.log("  Batch inserted %d items.", inserted)
}

// LastRunTime returns the completion time of the most recent run, or
// the zero time if no run has completed.
func (r *Reconciler) LastRunTime() time.Time {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.lastRunTime
}

func (res *Result) log(format string, args ...interface{}) {
	res.Logs = append(res.Logs, fmt.Sprintf(format, args...))
}
