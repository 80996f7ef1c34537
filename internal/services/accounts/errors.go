package accounts

import (
	"errors"

	"mentor-match/internal/utils/identifier"
)

// ErrNotFound is returned when no collection holds a matching record.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned by a repository when a unique index rejects a write.
var ErrDuplicate = errors.New("email or mobile is already registered")

// ErrInvalidIdentifierFormat is returned when a login identifier is neither an email nor a mobile number.
var ErrInvalidIdentifierFormat = identifier.ErrInvalidFormat

// ErrInvalidRole is returned for a role other than mentor or mentee.
var ErrInvalidRole = errors.New("invalid user type")

// ErrNotificationNotFound is returned when a notification id is not on the profile.
var ErrNotificationNotFound = errors.New("notification not found")
