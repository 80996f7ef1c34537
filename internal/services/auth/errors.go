package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("email or mobile is already registered")
	ErrMissingFields      = errors.New("all fields are required, including photo")
	ErrNoPhoto            = errors.New("no photo uploaded")
	ErrInvalidImage       = errors.New("uploaded file is not a valid image")
	ErrPhotoTooLarge      = errors.New("uploaded photo is too large")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidMobile      = errors.New("mobile must be exactly 10 digits")
	ErrUpload             = errors.New("failed to upload photo")
	ErrCreateAccount      = errors.New("failed to create account")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ErrGenAccessToken is returned when we cannot create a JWT.
var ErrGenAccessToken = errors.New("failed to generate access token")
