package auth

import (
	"testing"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-valid-test-secret-32-chars-long"

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(VerifierConfig{Secret: testSecret, Issuer: "paapimg", Audience: "paapimg-web"})
	require.NoError(t, err)
	return v
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	_, err := NewVerifier(VerifierConfig{})
	assert.Error(t, err)
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := newTestVerifier(t)
	user := domain.User{ID: uuid.New(), Email: "test@example.com"}

	token, err := v.Issue(user, 5*time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "test@example.com", got.Email)
}

func TestVerifier_Rejects(t *testing.T) {
	v := newTestVerifier(t)
	user := domain.User{ID: uuid.New(), Email: "test@example.com"}

	sign := func(claims Claims, secret string, method jwt.SigningMethod) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := func() Claims {
		return Claims{
			Email: user.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.ID.String(),
				Issuer:    "paapimg",
				Audience:  jwt.ClaimStrings{"paapimg-web"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
	}

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "empty",
			token: func() string { return "  " },
		},
		{
			name:  "garbage",
			token: func() string { return "not-a-jwt" },
		},
		{
			name: "expired",
			token: func() string {
				c := valid()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return sign(c, testSecret, jwt.SigningMethodHS256)
			},
		},
		{
			name: "no expiry",
			token: func() string {
				c := valid()
				c.ExpiresAt = nil
				return sign(c, testSecret, jwt.SigningMethodHS256)
			},
		},
		{
			name: "wrong secret",
			token: func() string {
				return sign(valid(), "wrong-secret-that-should-fail-validation", jwt.SigningMethodHS256)
			},
		},
		{
			name: "wrong issuer",
			token: func() string {
				c := valid()
				c.Issuer = "someone-else"
				return sign(c, testSecret, jwt.SigningMethodHS256)
			},
		},
		{
			name: "wrong audience",
			token: func() string {
				c := valid()
				c.Audience = jwt.ClaimStrings{"other-app"}
				return sign(c, testSecret, jwt.SigningMethodHS256)
			},
		},
		{
			name: "subject is not a uuid",
			token: func() string {
				c := valid()
				c.Subject = "user-123"
				return sign(c, testSecret, jwt.SigningMethodHS256)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token())
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		})
	}
}
