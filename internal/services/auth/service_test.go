package auth

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"mentor-match/internal/config"
	"mentor-match/internal/services/accounts"
	"mentor-match/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockAccounts is a mock implementation of Accounts
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Resolve(ctx context.Context, ident string) (*accounts.Account, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) IdentityTaken(ctx context.Context, email, mobile string) (bool, error) {
	args := m.Called(ctx, email, mobile)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccounts) Create(ctx context.Context, acc *accounts.Account) error {
	return m.Called(ctx, acc).Error(0)
}

// MockUploader is a mock implementation of Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, photo Photo) (string, error) {
	args := m.Called(ctx, photo)
	return args.String(0), args.Error(1)
}

func testConfig() config.Config {
	return config.Config{
		BcryptCost:       4,
		JWTSecret:        "this-is-a-test-jwt-secret-key-with-32-plus-chars",
		JWTAlgorithm:     "HS256",
		AccessTokenHours: 26,
		MaxUploadMB:      5,
	}
}

func newTestService() (*Service, *MockAccounts, *MockUploader) {
	accs := &MockAccounts{}
	up := &MockUploader{}
	return NewService(accs, up, testConfig(), silentLogger), accs, up
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Type:     "mentor",
		Name:     "Ada",
		Email:    "a@x.com",
		Mobile:   "1234567890",
		Password: "pw",
		Skills:   "go",
	}
}

func pngPhoto() *Photo {
	return &Photo{Filename: "a.png", ContentType: "image/png", Size: 4, Reader: bytes.NewReader([]byte{0x89, 'P', 'N', 'G'})}
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	svc, accs, up := newTestService()

	accs.On("IdentityTaken", ctx, "a@x.com", "1234567890").Return(false, nil)
	up.On("Upload", ctx, mock.AnythingOfType("auth.Photo")).Return("https://cdn.test/a.png", nil)
	accs.On("Create", ctx, mock.AnythingOfType("*accounts.Account")).Return(nil)

	resp, err := svc.Register(ctx, validRegister(), pngPhoto())
	require.NoError(t, err)

	require.NotNil(t, resp.User.Mentor)
	assert.Equal(t, accounts.RoleMentor, resp.User.Role)
	assert.Equal(t, "https://cdn.test/a.png", resp.User.Mentor.Photo)
	assert.NotEqual(t, "pw", resp.User.PasswordHash())
	assert.NoError(t, crypto.CheckPassword("pw", resp.User.PasswordHash()))

	claims, err := svc.ParseToken(resp.Auth)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID().Hex(), claims.ID)
	assert.Equal(t, accounts.RoleMentor, claims.Role)
	assert.WithinDuration(t, time.Now().Add(26*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRegister_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     func() RegisterRequest
		photo   func() *Photo
		taken   bool
		wantErr error
	}{
		{
			name:    "no photo",
			req:     validRegister,
			photo:   func() *Photo { return nil },
			wantErr: ErrNoPhoto,
		},
		{
			name: "pdf is not an image",
			req:  validRegister,
			photo: func() *Photo {
				p := pngPhoto()
				p.ContentType = "application/pdf"
				return p
			},
			wantErr: ErrInvalidImage,
		},
		{
			name: "photo too large",
			req:  validRegister,
			photo: func() *Photo {
				p := pngPhoto()
				p.Size = 6 << 20
				return p
			},
			wantErr: ErrPhotoTooLarge,
		},
		{
			name: "missing skills",
			req: func() RegisterRequest {
				r := validRegister()
				r.Skills = "   "
				return r
			},
			photo:   pngPhoto,
			wantErr: ErrMissingFields,
		},
		{
			name: "bad email",
			req: func() RegisterRequest {
				r := validRegister()
				r.Email = "not-an-email"
				return r
			},
			photo:   pngPhoto,
			wantErr: ErrInvalidEmail,
		},
		{
			name: "bad mobile",
			req: func() RegisterRequest {
				r := validRegister()
				r.Mobile = "12345"
				return r
			},
			photo:   pngPhoto,
			wantErr: ErrInvalidMobile,
		},
		{
			name: "password longer than bcrypt accepts",
			req: func() RegisterRequest {
				r := validRegister()
				r.Password = strings.Repeat("p", crypto.MaxPasswordBytes+1)
				return r
			},
			photo:   pngPhoto,
			wantErr: crypto.ErrPasswordTooLong,
		},
		{
			name:    "already registered",
			req:     validRegister,
			photo:   pngPhoto,
			taken:   true,
			wantErr: ErrAlreadyRegistered,
		},
		{
			name: "unknown type",
			req: func() RegisterRequest {
				r := validRegister()
				r.Type = "admin"
				return r
			},
			photo:   pngPhoto,
			wantErr: ErrInvalidUserType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accs, up := newTestService()
			accs.On("IdentityTaken", ctx, mock.Anything, mock.Anything).Return(tt.taken, nil)

			_, err := svc.Register(ctx, tt.req(), tt.photo())
			assert.ErrorIs(t, err, tt.wantErr)
			up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
			accs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_UploadFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc, accs, up := newTestService()

	accs.On("IdentityTaken", ctx, mock.Anything, mock.Anything).Return(false, nil)
	up.On("Upload", ctx, mock.Anything).Return("", errors.New("cdn down"))

	_, err := svc.Register(ctx, validRegister(), pngPhoto())
	assert.ErrorIs(t, err, ErrUpload)
	accs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateOnInsert(t *testing.T) {
	ctx := context.Background()
	svc, accs, up := newTestService()

	accs.On("IdentityTaken", ctx, mock.Anything, mock.Anything).Return(false, nil)
	up.On("Upload", ctx, mock.Anything).Return("https://cdn.test/a.png", nil)
	accs.On("Create", ctx, mock.Anything).Return(accounts.ErrDuplicate)

	_, err := svc.Register(ctx, validRegister(), pngPhoto())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func storedMentee(t *testing.T, password string) *accounts.Account {
	t.Helper()
	hash, err := crypto.HashPassword(password, 4)
	require.NoError(t, err)
	return accounts.NewMenteeAccount(&accounts.Mentee{Profile: accounts.Profile{
		ID:           bson.NewObjectID(),
		Email:        "b@x.com",
		Mobile:       "5550001111",
		PasswordHash: hash,
	}})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success by mobile", func(t *testing.T) {
		svc, accs, _ := newTestService()
		acc := storedMentee(t, "pw")
		accs.On("Resolve", ctx, "5550001111").Return(acc, nil)

		resp, err := svc.Login(ctx, LoginRequest{Identifier: "5550001111", Password: "pw"})
		require.NoError(t, err)
		assert.Same(t, acc, resp.User)

		claims, err := svc.ParseToken(resp.Auth)
		require.NoError(t, err)
		assert.Equal(t, accounts.RoleMentee, claims.Role)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		svc, accs, _ := newTestService()
		accs.On("Resolve", ctx, "b@x.com").Return(storedMentee(t, "pw"), nil)
		accs.On("Resolve", ctx, "nobody@x.com").Return(nil, accounts.ErrNotFound)

		_, errWrong := svc.Login(ctx, LoginRequest{Identifier: "b@x.com", Password: "nope"})
		_, errMissing := svc.Login(ctx, LoginRequest{Identifier: "nobody@x.com", Password: "pw"})
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.ErrorIs(t, errMissing, ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errMissing.Error())
	})

	t.Run("invalid identifier format", func(t *testing.T) {
		svc, accs, _ := newTestService()
		accs.On("Resolve", ctx, "abc").Return(nil, accounts.ErrInvalidIdentifierFormat)

		_, err := svc.Login(ctx, LoginRequest{Identifier: "abc", Password: "pw"})
		assert.ErrorIs(t, err, accounts.ErrInvalidIdentifierFormat)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		svc, accs, _ := newTestService()
		accs.On("Resolve", ctx, "b@x.com").Return(nil, errors.New("timeout"))

		_, err := svc.Login(ctx, LoginRequest{Identifier: "b@x.com", Password: "pw"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestParseToken_Rejects(t *testing.T) {
	svc, _, _ := newTestService()
	acc := storedMentee(t, "pw")

	expired := Claims{
		ID:   acc.ID().Hex(),
		Role: accounts.RoleMentee,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testConfig().JWTSecret))
	require.NoError(t, err)
	_, err = svc.ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	good, err := svc.GenerateAccessToken(acc)
	require.NoError(t, err)
	other := NewService(nil, nil, config.Config{JWTSecret: "another-secret-key-that-is-long-enough-32"}, silentLogger)
	_, err = other.ParseToken(good)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
