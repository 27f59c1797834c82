package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestParse_JWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signed(t, jwt.RegisteredClaims{Subject: "member01", ExpiresAt: jwt.NewNumericDate(exp)})

	tok, err := Parse("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, raw, tok.Raw())
	assert.Equal(t, "member01", tok.Subject())
	assert.True(t, exp.Equal(tok.ExpiresAt()))
	assert.NoError(t, tok.Check(time.Now()))

	err = tok.Check(exp.Add(time.Second))
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
	assert.True(t, domain.IsPrecondition(err))
}

func TestParse_Opaque(t *testing.T) {
	tok, err := Parse("opaque-session-id")
	require.NoError(t, err)
	assert.True(t, tok.ExpiresAt().IsZero())
	assert.NoError(t, tok.Check(time.Now().Add(100*365*24*time.Hour)))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Parse("a.b.c")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheck_NilToken(t *testing.T) {
	var tok *Token
	assert.NoError(t, tok.Check(time.Now()))
}
