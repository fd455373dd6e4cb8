package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	s := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := s.Generate(userID)
	require.NoError(t, err)

	parsed, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseExpiredToken(t *testing.T) {
	s := &TokenService{secret: []byte("test-secret"), validity: -time.Minute}

	token, err := s.Generate(uuid.New())
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseForeignSecret(t *testing.T) {
	issuer := NewTokenService("secret-one")
	verifier := NewTokenService("secret-two")

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	s := NewTokenService("test-secret")

	for _, token := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		_, err := s.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
