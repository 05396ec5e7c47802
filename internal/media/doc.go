// Package media generates and caches JPEG thumbnails for gallery and
// room cover views. Images are decoded in-process (jpeg, png, gif, and
// webp); video thumbnails are single frames grabbed via ffmpeg when it
// is available on the PATH.
package media
