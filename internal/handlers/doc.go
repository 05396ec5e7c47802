// Package handlers provides HTTP request handlers for the museum API.
//
// It includes handlers for:
//   - Room management and per-room media listings
//   - Media records, uploads and thumbnails
//   - Library sync against the on-disk media directory
//   - Password authentication and sessions
//   - Health checks and version information
package handlers
