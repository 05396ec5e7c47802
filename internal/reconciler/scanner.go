package reconciler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"virtual-museum/internal/mediatypes"
)

// ErrRootNotFound is returned by Run when the media root directory does
// not exist. Callers surface it as a 404 rather than a server fault.
var ErrRootNotFound = errors.New("media root directory not found")

// roomDir is one immediate subdirectory of the media root. Its name is
// expected to equal a room's slug.
type roomDir struct {
	Name string
	Path string
}

// mediaFile is a classified file found inside a room directory.
type mediaFile struct {
	Name string
	Type mediatypes.MediaType
}

// scanRoomDirs lists the immediate subdirectories of root, skipping
// hidden names. A missing root reports ErrRootNotFound.
func scanRoomDirs(root string) ([]roomDir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("failed to read media root: %w", err)
	}

	dirs := []roomDir{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, roomDir{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		})
	}

	return dirs, nil
}

// scanMediaFiles lists the immediate files of a room directory in
// directory order, excluding hidden files and nested directories.
// Every file keeps its classified type, including files that classify
// as neither image nor video, so the caller can report them in the
// order they were encountered.
func scanMediaFiles(dir string) ([]mediaFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read room directory: %w", err)
	}

	files := []mediaFile{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		files = append(files, mediaFile{
			Name: entry.Name(),
			Type: mediatypes.Classify(entry.Name()),
		})
	}

	return files, nil
}
