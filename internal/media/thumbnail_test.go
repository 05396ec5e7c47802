package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"virtual-museum/internal/mediatypes"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

func TestGetThumbnailDisabled(t *testing.T) {
	t.Parallel()

	gen := NewThumbnailGenerator(t.TempDir(), false)
	if _, err := gen.GetThumbnail("whatever.jpg", mediatypes.TypeImage); err == nil {
		t.Fatal("disabled generator should error")
	}
}

func TestGetThumbnailMissingFile(t *testing.T) {
	t.Parallel()

	gen := NewThumbnailGenerator(t.TempDir(), true)
	if _, err := gen.GetThumbnail(filepath.Join(t.TempDir(), "nope.jpg"), mediatypes.TypeImage); err == nil {
		t.Fatal("missing file should error")
	}
}

func TestGetThumbnailGeneratesAndCaches(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	srcPath := writeTestPNG(t, t.TempDir(), "big.png", 1200, 800)

	gen := NewThumbnailGenerator(cacheDir, true)

	data, err := gen.GetThumbnail(srcPath, mediatypes.TypeImage)
	if err != nil {
		t.Fatalf("GetThumbnail: %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail is not valid JPEG: %v", err)
	}
	if cfg.Width > thumbWidth || cfg.Height > thumbHeight {
		t.Errorf("thumbnail %dx%d exceeds bounding box %dx%d",
			cfg.Width, cfg.Height, thumbWidth, thumbHeight)
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(entries))
	}

	// Second request served from cache with identical bytes.
	again, err := gen.GetThumbnail(srcPath, mediatypes.TypeImage)
	if err != nil {
		t.Fatalf("cached GetThumbnail: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("cached thumbnail differs from generated one")
	}
}

func TestGetThumbnailRejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	srcPath := writeTestPNG(t, t.TempDir(), "a.png", 10, 10)

	gen := NewThumbnailGenerator(t.TempDir(), true)
	if _, err := gen.GetThumbnail(srcPath, mediatypes.TypeOther); err == nil {
		t.Fatal("TypeOther should be rejected")
	}
}
