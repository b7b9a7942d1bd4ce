// Package auth issues and validates the stateless bearer tokens that
// authenticate API calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the owning user id plus the standard claims.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// UserFinder resolves a token's user id to a full record.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// TokenService signs and verifies HS256 tokens. It holds no per-request state
// and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
	users    UserFinder
	now      func() time.Time
}

// NewTokenService returns a service signing with secret. A zero validity
// issues tokens without an exp claim.
func NewTokenService(secret []byte, validity time.Duration, users UserFinder) *TokenService {
	return &TokenService{secret: secret, validity: validity, users: users, now: time.Now}
}

// Issue returns a signed token bound to userID.
func (s *TokenService) Issue(userID int64) (string, error) {
	claims := Claims{UserID: userID}
	if s.validity > 0 {
		now := s.now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks token and returns the user it belongs to, read fresh from
// storage.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, common.ErrEmptyToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrMalformedToken
	}
	if claims.UserID == 0 {
		return nil, common.ErrMalformedToken
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, err
	}
	return u, nil
}

// ExtractBearer pulls the token out of an Authorization header value.
func ExtractBearer(header string) (string, error) {
	if len(header) <= len(common.BearerPrefix) ||
		!strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", common.ErrEmptyToken
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	if token == "" {
		return "", common.ErrEmptyToken
	}
	return token, nil
}
