// Package mediatypes classifies files by extension into the media types
// the museum can display.
//
// Supported file types:
//   - Images: jpg, jpeg, png, gif, webp
//   - Videos: mp4, mov, webm
//
// Anything else classifies as TypeOther and is excluded from galleries
// and from directory synchronization.
package mediatypes
