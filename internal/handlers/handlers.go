package handlers

import (
	"virtual-museum/internal/auth"
	"virtual-museum/internal/database"
	"virtual-museum/internal/media"
	"virtual-museum/internal/reconciler"
	"virtual-museum/internal/startup"
)

type Handlers struct {
	db         *database.Database
	reconciler *reconciler.Reconciler
	sessions   auth.Sessions
	verifier   *auth.PasswordVerifier
	thumbGen   *media.ThumbnailGenerator
	mediaDir   string
}

func New(db *database.Database, rec *reconciler.Reconciler, sessions auth.Sessions, verifier *auth.PasswordVerifier, config *startup.Config) *Handlers {
	return &Handlers{
		db:         db,
		reconciler: rec,
		sessions:   sessions,
		verifier:   verifier,
		thumbGen:   media.NewThumbnailGenerator(config.ThumbnailDir, config.ThumbnailsEnabled),
		mediaDir:   config.MediaDir,
	}
}
