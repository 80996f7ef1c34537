package notifications

import "errors"

// ErrWrongRole is returned when a notification's sender is not the
// counterpart of the acting user.
var ErrWrongRole = errors.New("notification does not belong to a mentorship between these roles")

// ErrSelfRequest is returned when a mentorship request names the same profile twice.
var ErrSelfRequest = errors.New("cannot request mentorship from yourself")
