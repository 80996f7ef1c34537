package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mentor-match/internal/config"
	"mentor-match/internal/services/accounts"
	"mentor-match/internal/utils/crypto"
	"mentor-match/internal/utils/identifier"
	"mentor-match/internal/utils/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service is the credential gate: registration, login and token handling.
type Service struct {
	accounts Accounts
	uploader Uploader
	config   config.Config
	log      *slog.Logger
}

// NewService creates a new auth service
func NewService(accs Accounts, uploader Uploader, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		accounts: accs,
		uploader: uploader,
		config:   cfg,
		log:      log,
	}
}

// Register creates a mentor or mentee profile with a photo and signs the
// caller in. Checks run photo, image type, required fields, uniqueness, then
// user type, so the cheapest rejections come first.
func (s *Service) Register(ctx context.Context, req RegisterRequest, photo *Photo) (*AuthResponse, error) {
	if photo == nil || photo.Reader == nil {
		return nil, ErrNoPhoto
	}
	if !allowedImageTypes[strings.ToLower(photo.ContentType)] {
		return nil, ErrInvalidImage
	}
	if photo.Size > int64(s.config.MaxUploadMB)<<20 {
		return nil, ErrPhotoTooLarge
	}

	req = normalizeRegister(req)
	if req.Type == "" || req.Name == "" || req.Email == "" || req.Mobile == "" || req.Password == "" || req.Skills == "" {
		return nil, ErrMissingFields
	}
	if !identifier.IsEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if !identifier.IsMobile(req.Mobile) {
		return nil, ErrInvalidMobile
	}
	if len(req.Password) > crypto.MaxPasswordBytes {
		return nil, crypto.ErrPasswordTooLong
	}

	taken, err := s.accounts.IdentityTaken(ctx, req.Email, req.Mobile)
	if err != nil {
		s.log.Error("failed to check identity", "error", err)
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyRegistered
	}

	role, err := accounts.ParseRole(req.Type)
	if err != nil {
		return nil, ErrInvalidUserType
	}

	photoURL, err := s.uploader.Upload(ctx, *photo)
	if err != nil {
		s.log.Error(ErrUpload.Error(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	hash, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		return nil, errors.New("failed to process password")
	}

	acc := newAccount(role, req, hash, photoURL)
	if err := s.accounts.Create(ctx, acc); err != nil {
		s.log.Warn("photo orphaned by failed registration", "photo", photoURL, "error", err)
		if errors.Is(err, accounts.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("%w: %w", ErrCreateAccount, err)
	}

	token, err := s.GenerateAccessToken(acc)
	if err != nil {
		s.log.Error(ErrGenAccessToken.Error(), "error", err)
		return nil, ErrGenAccessToken
	}

	return &AuthResponse{User: acc, Auth: token}, nil
}

// Login authenticates by email or mobile number.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	acc, err := s.accounts.Resolve(ctx, req.Identifier)
	switch {
	case errors.Is(err, accounts.ErrInvalidIdentifierFormat):
		return nil, accounts.ErrInvalidIdentifierFormat
	case errors.Is(err, accounts.ErrNotFound):
		crypto.BurnCompare(req.Password, s.config.BcryptCost)
		return nil, ErrInvalidCredentials
	case err != nil:
		s.log.Error("failed to resolve identifier", "error", err)
		return nil, err
	}

	if err := crypto.CheckPassword(req.Password, acc.PasswordHash()); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateAccessToken(acc)
	if err != nil {
		s.log.Error(ErrGenAccessToken.Error(), "error", err)
		return nil, ErrGenAccessToken
	}

	return &AuthResponse{User: acc, Auth: token}, nil
}

// GenerateAccessToken signs an HS256 token carrying the account id and role.
func (s *Service) GenerateAccessToken(acc *accounts.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:   acc.ID().Hex(),
		Role: acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.AccessTokenHours) * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
}

// ParseToken verifies a token and returns its claims.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := bson.ObjectIDFromHex(claims.ID); err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := accounts.ParseRole(string(claims.Role)); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeRegister(req RegisterRequest) RegisterRequest {
	req.Type = strings.TrimSpace(req.Type)
	req.Name = sanitize.Field(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Skills = sanitize.Field(req.Skills)
	req.Experience = sanitize.Field(req.Experience)
	req.Availability = sanitize.Field(req.Availability)
	return req
}

func newAccount(role accounts.Role, req RegisterRequest, hash, photoURL string) *accounts.Account {
	now := time.Now().UTC()
	profile := accounts.Profile{
		ID:            bson.NewObjectID(),
		Name:          req.Name,
		Email:         req.Email,
		Mobile:        req.Mobile,
		PasswordHash:  hash,
		Skills:        req.Skills,
		Photo:         photoURL,
		Notifications: []accounts.Notification{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if role == accounts.RoleMentor {
		return accounts.NewMentorAccount(&accounts.Mentor{
			Profile:      profile,
			Experience:   req.Experience,
			Availability: req.Availability,
			Mentees:      []bson.ObjectID{},
		})
	}
	return accounts.NewMenteeAccount(&accounts.Mentee{
		Profile: profile,
		Mentors: []bson.ObjectID{},
	})
}
