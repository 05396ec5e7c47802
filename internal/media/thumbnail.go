package media

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"virtual-museum/internal/logging"
	"virtual-museum/internal/mediatypes"
	"virtual-museum/internal/metrics"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	thumbWidth  = 400
	thumbHeight = 400
	jpegQuality = 80
)

// ThumbnailGenerator produces and caches JPEG thumbnails for the
// gallery and room cover views.
type ThumbnailGenerator struct {
	cacheDir string
	enabled  bool
	mu       sync.Mutex
}

// NewThumbnailGenerator creates a generator caching into cacheDir.
// When disabled (cache directory unavailable) GetThumbnail always
// errors and callers fall back to the full asset.
func NewThumbnailGenerator(cacheDir string, enabled bool) *ThumbnailGenerator {
	if enabled {
		logging.Debug("ThumbnailGenerator: enabled, cache dir: %s", cacheDir)
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			logging.Warn("ThumbnailGenerator: failed to create cache dir: %v", err)
		}
	} else {
		logging.Debug("ThumbnailGenerator: disabled")
	}
	return &ThumbnailGenerator{
		cacheDir: cacheDir,
		enabled:  enabled,
	}
}

// IsEnabled reports whether thumbnail generation is available.
func (t *ThumbnailGenerator) IsEnabled() bool {
	return t.enabled
}

// GetThumbnail returns the cached thumbnail for filePath, generating
// it on a miss. The returned bytes are always JPEG.
func (t *ThumbnailGenerator) GetThumbnail(filePath string, mediaType mediatypes.MediaType) ([]byte, error) {
	if !t.enabled {
		return nil, fmt.Errorf("thumbnails disabled")
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("file not accessible: %w", err)
	}

	hash := md5.Sum([]byte(filePath))
	cachePath := filepath.Join(t.cacheDir, fmt.Sprintf("%x.jpg", hash))

	if data, err := os.ReadFile(cachePath); err == nil {
		metrics.ThumbnailCacheHits.Inc()
		return data, nil
	}
	metrics.ThumbnailCacheMisses.Inc()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another request may have generated it while we waited.
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	logging.Debug("Thumbnail generating: %s (type: %s)", filePath, mediaType)

	var img image.Image
	var err error

	switch mediaType {
	case mediatypes.TypeImage:
		img, err = generateImageThumbnail(filePath)
	case mediatypes.TypeVideo:
		img, err = grabVideoFrame(filePath)
	default:
		err = fmt.Errorf("unsupported media type: %s", mediaType)
	}

	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues(string(mediaType), "error").Inc()
		return nil, fmt.Errorf("thumbnail generation failed: %w", err)
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues(string(mediaType), "error").Inc()
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if err := os.WriteFile(cachePath, buf.Bytes(), 0o644); err != nil {
		logging.Warn("Failed to cache thumbnail %s: %v", cachePath, err)
	}

	metrics.ThumbnailGenerationsTotal.WithLabelValues(string(mediaType), "success").Inc()
	return buf.Bytes(), nil
}

// generateImageThumbnail decodes an image file, applying EXIF
// orientation. imaging handles jpeg/png/gif natively; webp decoding
// comes from the registered x/image decoder.
func generateImageThumbnail(filePath string) (image.Image, error) {
	img, err := imaging.Open(filePath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// grabVideoFrame extracts a single frame from a video via ffmpeg.
func grabVideoFrame(filePath string) (image.Image, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	cmd := exec.Command("ffmpeg",
		"-ss", "00:00:01",
		"-i", filePath,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", filePath)
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return img, nil
}
