// Package database provides SQLite persistence for the virtual museum.
//
// It stores:
//   - Rooms (named media collections with unique slugs)
//   - Media records (images and videos owned by exactly one room)
//   - Visitor sessions (sha256-hashed tokens with sliding expiry)
//
// The database uses WAL mode and enables foreign key enforcement so
// deleting a room cascades to its media. Media URLs are unique across
// the whole store; the bulk insert path used by the directory sync
// relies on that constraint for its duplicate-skip semantics.
package database
