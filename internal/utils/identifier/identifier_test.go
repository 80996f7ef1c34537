package identifier

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Field
		wantErr bool
	}{
		{"plain email", "a@x.com", FieldEmail, false},
		{"email with subdomain", "first.last@mail.example.org", FieldEmail, false},
		{"email with surrounding spaces", "  a@x.com  ", FieldEmail, false},
		{"ten digits", "1234567890", FieldMobile, false},
		{"nine digits", "123456789", "", true},
		{"eleven digits", "12345678901", "", true},
		{"digits with plus", "+123456789", "", true},
		{"email without tld", "a@x", "", true},
		{"email with space", "a b@x.com", "", true},
		{"double at", "a@@x.com", "", true},
		{"empty", "", "", true},
		{"words", "hello", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidators(v))

	type req struct {
		Identifier string `validate:"required,identifier"`
		Email      string `validate:"omitempty,account_email"`
	}

	assert.NoError(t, v.Struct(req{Identifier: "a@x.com", Email: "a@x.com"}))
	assert.NoError(t, v.Struct(req{Identifier: "1234567890"}))
	assert.Error(t, v.Struct(req{Identifier: "nope"}))
	assert.Error(t, v.Struct(req{Identifier: "a@x.com", Email: "a @x.com"}))

	// Anything registration accepts must pass account_email too.
	for _, email := range []string{"first..last@x.com", "a,b@x.com", "a@x..com", " Ada@X.com "} {
		require.True(t, IsEmail(strings.TrimSpace(email)), email)
		assert.NoError(t, v.Struct(req{Identifier: "a@x.com", Email: email}), email)
	}
}
