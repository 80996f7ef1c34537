package auth

import (
	"io"

	"mentor-match/internal/services/accounts"

	"github.com/golang-jwt/jwt/v5"
)

// Photo is an uploaded profile picture as received from the client.
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// allowedImageTypes lists the accepted photo MIME types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// RegisterRequest represents the text fields of a multipart registration form
type RegisterRequest struct {
	Type         string `form:"type" example:"mentor"`
	Name         string `form:"name" example:"Ada"`
	Email        string `form:"email" example:"a@x.com"`
	Mobile       string `form:"mobile" example:"1234567890"`
	Password     string `form:"password" example:"Password123"`
	Skills       string `form:"skills" example:"go, distributed systems"`
	Experience   string `form:"experience" example:"8 years backend"`
	Availability string `form:"availability" example:"weekends"`
}

// LoginRequest represents a login by email or mobile number
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,identifier" example:"a@x.com"`
	Password   string `json:"password" example:"Password123"`
}

// AuthResponse represents the response for successful authentication
type AuthResponse struct {
	User *accounts.Account `json:"user"`
	Auth string            `json:"auth" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJpZCI6IjY4M2NkYjhhYTk2YWQ3MWU4ZTA3NWJkMSIsInJvbGUiOiJtZW50b3IifQ.sig"`
}

// Claims is the access token payload.
type Claims struct {
	ID   string        `json:"id"`
	Role accounts.Role `json:"role"`
	jwt.RegisteredClaims
}
