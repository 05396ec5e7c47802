package mediatypes

import (
	"path/filepath"
	"strings"
)

// MediaType represents the kind of a media asset.
type MediaType string

const (
	// TypeImage represents an image asset.
	TypeImage MediaType = "image"
	// TypeVideo represents a video asset.
	TypeVideo MediaType = "video"
	// TypeOther represents an unsupported file type.
	TypeOther MediaType = "other"
)

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",

	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// Classify returns the MediaType for a file name based on its extension.
// Matching is case-insensitive on the extension only; the rest of the
// name is never inspected. Unrecognized extensions return TypeOther.
func Classify(name string) MediaType {
	ext := strings.ToLower(filepath.Ext(name))
	if VideoExtensions[ext] {
		return TypeVideo
	}
	if ImageExtensions[ext] {
		return TypeImage
	}
	return TypeOther
}

// Valid reports whether t is a persistable media type.
func (t MediaType) Valid() bool {
	return t == TypeImage || t == TypeVideo
}

// GetMimeType returns the MIME type for a given file name.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
