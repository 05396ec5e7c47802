// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - MEDIA_DIR: Path to the media library root (default: /media)
//   - DATA_DIR: Path to writable state (database, thumbnail cache) (default: /data)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - ADMIN_PASSWORD: Plaintext admin credential
//   - ADMIN_PASSWORD_HASH: bcrypt admin credential (wins over ADMIN_PASSWORD)
//   - SESSION_CLEANUP_INTERVAL: Expired session sweep interval (default: 1h)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// At least one of ADMIN_PASSWORD and ADMIN_PASSWORD_HASH must be set;
// LoadConfig fails otherwise. Hashes are generated with cmd/hashpw.
//
// # Directory Setup
//
// The package validates and creates required directories:
//   - Data directory: Required, must be writable
//   - Thumbnail directory: Optional, disables thumbnails when not writable
//   - Media directory: Checked but not created (should be mounted)
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
package startup
