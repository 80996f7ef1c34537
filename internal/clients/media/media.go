// Package media stores profile photos either on Cloudinary or on local disk.
// Both providers are wrapped in a circuit breaker.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"mentor-match/internal/config"
	"mentor-match/internal/services/auth"
)

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "/uploads"

// Store is implemented by each provider.
type Store interface {
	Upload(ctx context.Context, photo auth.Photo) (string, error)
}

// New builds the provider selected by cfg.MediaProvider behind a breaker.
func New(cfg config.Config, log *slog.Logger) (*Guard, error) {
	var (
		store Store
		err   error
	)
	switch cfg.MediaProvider {
	case config.MediaProviderCloudinary:
		store, err = NewCloudinary(cfg)
	case config.MediaProviderLocal:
		store, err = NewLocal(cfg.UploadDir, PublicPrefix)
	default:
		err = config.ErrMediaProvider
	}
	if err != nil {
		return nil, fmt.Errorf("media provider %q: %w", cfg.MediaProvider, err)
	}
	log.Info("media provider ready", "provider", cfg.MediaProvider)
	return NewGuard(cfg.MediaProvider, store, log), nil
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// extension picks a file extension from the content type, falling back to
// the client's file name.
func extension(photo auth.Photo) string {
	if ext, ok := extByType[strings.ToLower(photo.ContentType)]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(photo.Filename))
}
