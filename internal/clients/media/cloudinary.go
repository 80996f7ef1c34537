package media

import (
	"context"
	"errors"
	"fmt"

	"mentor-match/internal/config"
	"mentor-match/internal/services/auth"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary uploads photos to a Cloudinary folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary prefers CLOUDINARY_URL and falls back to the separate
// cloud name, key and secret.
func NewCloudinary(cfg config.Config) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld, folder: cfg.CloudFolder}, nil
}

// Upload sends the photo and returns its https URL.
func (c *Cloudinary) Upload(ctx context.Context, photo auth.Photo) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, photo.Reader, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", errors.New("cloudinary upload: " + res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty url")
	}
	return res.SecureURL, nil
}
