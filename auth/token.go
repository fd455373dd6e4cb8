package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: malformed token, bad
// signature, expired token. Callers get no detail about which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService signs and verifies the session tokens used by the API.
// Tokens are stateless; expiry is the only bound on their lifetime.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

const TokenValidity = 72 * time.Hour

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), validity: TokenValidity}
}

// Generate issues a signed token binding the given user id.
func (s *TokenService) Generate(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(s.validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies a token and returns the user id it binds.
func (s *TokenService) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
