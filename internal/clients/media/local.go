package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"mentor-match/internal/services/auth"

	"github.com/google/uuid"
)

// Local writes photos under dir and serves them from prefix.
type Local struct {
	dir    string
	prefix string
}

// NewLocal creates dir if needed.
func NewLocal(dir, prefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, prefix: prefix}, nil
}

// Upload stores the photo under a random name and returns its URL path.
func (l *Local) Upload(ctx context.Context, photo auth.Photo) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + extension(photo)
	dst := filepath.Join(l.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	if _, err := io.Copy(f, photo.Reader); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close photo: %w", err)
	}

	return path.Join(l.prefix, name), nil
}
