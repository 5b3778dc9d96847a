package session

import (
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		Email: "coach@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(testSecret)

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

		s, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", s.UserID)
		assert.Equal(t, "coach@example.com", s.Email)
		assert.Equal(t, token, s.AccessToken)
		assert.Equal(t, Authenticated, s.State)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("another-secret"), validClaims())

		s, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, Unauthenticated, s.State)
	})

	t.Run("expired", func(t *testing.T) {
		c := validClaims()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)

		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := validClaims()
		c.Audience = jwt.ClaimStrings{"anon"}
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)

		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())

		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := validClaims()
		c.Subject = ""
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)

		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifier_FromRequest(t *testing.T) {
	v := NewVerifier(testSecret)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	_, err := v.FromRequest(req)
	assert.ErrorIs(t, err, ErrMissingToken)

	req.Header.Set("Authorization", "Token abc")
	_, err = v.FromRequest(req)
	assert.ErrorIs(t, err, ErrMissingToken)

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())
	req.Header.Set("Authorization", "Bearer "+token)
	s, err := v.FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", s.UserID)
}
