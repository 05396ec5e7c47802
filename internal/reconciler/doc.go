// Package reconciler synchronizes the media table with the on-disk
// media directory tree.
//
// The media root contains one subdirectory per room, named by the
// room's slug. Each run matches directories to rooms, computes the set
// of files not yet recorded for that directory, and inserts the missing
// records in a single duplicate-skipping batch per room. Existing
// records are never updated or deleted.
//
// A run is an on-demand administrative action triggered over HTTP; it
// completes even when individual rooms fail, collecting a human-readable
// log of everything it did.
package reconciler
