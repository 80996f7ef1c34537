package auth

import (
	"context"

	"mentor-match/internal/services/accounts"
)

// Accounts is the slice of the identity resolver the gate needs.
type Accounts interface {
	Resolve(ctx context.Context, identifier string) (*accounts.Account, error)
	IdentityTaken(ctx context.Context, email, mobile string) (bool, error)
	Create(ctx context.Context, acc *accounts.Account) error
}

// Uploader stores a profile photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, photo Photo) (string, error)
}
