package accounts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"mentor-match/internal/utils/crypto"
	"mentor-match/internal/utils/sanitize"
)

// ErrHashPassword is returned when a patched password cannot be hashed.
var ErrHashPassword = errors.New("failed to process password")

// protectedKeys never reach the store through a patch.
var protectedKeys = map[string]bool{
	"_id": true, "id": true, "type": true, "role": true,
	"notifications": true, "mentors": true, "mentees": true,
	"created_at": true, "updated_at": true,
}

// textKeys are free-text fields cleaned before storage.
var textKeys = []string{"name", "skills", "experience", "availability"}

// Service serves the directory endpoints: listing, searching, syncing,
// updating and deleting profiles across both roles.
type Service struct {
	resolver   *Resolver
	bcryptCost int
	log        *slog.Logger
}

// NewService creates a new directory service
func NewService(resolver *Resolver, bcryptCost int, log *slog.Logger) *Service {
	return &Service{
		resolver:   resolver,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// SyncRequest asks for the current state of the profile holding Email.
type SyncRequest struct {
	Email string `json:"email" validate:"required,account_email" example:"a@x.com"`
}

// UserResponse wraps a single profile.
type UserResponse struct {
	User *Account `json:"user"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"User deleted successfully"`
}

// List returns every profile of role.
func (s *Service) List(ctx context.Context, role Role) ([]*Account, error) {
	return s.Search(ctx, role, SearchQuery{})
}

// Search returns the profiles of role matching q.
func (s *Service) Search(ctx context.Context, role Role, q SearchQuery) ([]*Account, error) {
	res, err := s.resolver.Search(ctx, role, q)
	if err != nil {
		s.log.Error("failed to search profiles", "error", err, "role", role)
		return nil, err
	}
	if res == nil {
		res = []*Account{}
	}
	return res, nil
}

// SyncByEmail returns the freshest copy of the profile holding email.
func (s *Service) SyncByEmail(ctx context.Context, email string) (*UserResponse, error) {
	acc, err := s.resolver.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to sync profile", "error", err)
		}
		return nil, err
	}
	return &UserResponse{User: acc}, nil
}

// Update applies a partial patch to the profile with id. Identity and
// relationship fields are dropped and a supplied password is re-hashed.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Account, error) {
	clean, err := s.preparePatch(patch)
	if err != nil {
		return nil, err
	}

	acc, err := s.resolver.UpdateByID(ctx, id, clean)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to update profile", "error", err, "id", id)
		}
		return nil, err
	}
	return acc, nil
}

// Delete removes the profile with id.
func (s *Service) Delete(ctx context.Context, id string) (*MessageResponse, error) {
	if err := s.resolver.DeleteByID(ctx, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to delete profile", "error", err, "id", id)
		}
		return nil, err
	}
	return &MessageResponse{Message: "User deleted successfully"}, nil
}

func (s *Service) preparePatch(patch Patch) (Patch, error) {
	clean := make(Patch, len(patch)+1)
	for k, v := range patch {
		if patchableKey(k) {
			clean[k] = v
		}
	}
	for _, k := range textKeys {
		if v, ok := clean[k].(string); ok {
			clean[k] = sanitize.Field(v)
		}
	}

	if email, ok := clean["email"].(string); ok {
		clean["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	if raw, ok := clean["password"]; ok {
		pw, isString := raw.(string)
		if !isString || pw == "" {
			delete(clean, "password")
		} else {
			hash, err := crypto.HashPassword(pw, s.bcryptCost)
			if errors.Is(err, crypto.ErrPasswordTooLong) {
				return nil, err
			}
			if err != nil {
				s.log.Error(ErrHashPassword.Error(), "error", err)
				return nil, ErrHashPassword
			}
			clean["password"] = hash
		}
	}

	clean["updated_at"] = time.Now().UTC()
	return clean, nil
}

// patchableKey accepts only plain top-level field names. Dotted paths and
// operators could reach into protected fields or break the $set.
func patchableKey(k string) bool {
	if k == "" || k != strings.TrimSpace(k) {
		return false
	}
	if strings.HasPrefix(k, "$") || strings.ContainsAny(k, ".\x00") {
		return false
	}
	return !protectedKeys[k]
}
