// Package auth implements token issuance and verification for stateless
// authentication. Tokens are HS256-signed JWTs carrying the subject user ID
// plus the display claims clients need without an extra lookup.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sevensfive/DevHub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "devhub-api"
	audience = "devhub-client"
)

// Identity is the decoded subject of a verified token.
type Identity struct {
	UserID   uint
	Username string
	Avatar   string
}

// Service issues and verifies tokens. It holds the signing secret and the
// validity window; it keeps no per-token state.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService returns a token service with the given signing secret and TTL.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewServiceWithClock is NewService with an injected clock, for tests.
func NewServiceWithClock(secret string, ttl time.Duration, now func() time.Time) *Service {
	s := NewService(secret, ttl)
	s.now = now
	return s
}

// Issue produces a signed token for a verified user. It is a pure
// transformation of claims into a signed artifact; no side effects.
func (s *Service) Issue(user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10), // Subject (user ID as string)
		"username": user.Username,                           // Display claims (cached in token)
		"avatar":   user.Avatar,
		"iss":      issuer,
		"aud":      audience,
		"exp":      now.Add(s.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and validity window of a presented token and
// returns the decoded identity. Failures are typed: an expired token with a
// valid signature yields TOKEN_EXPIRED; anything else yields BAD_SIGNATURE.
// Callers rely on the distinction — expiry prompts a silent re-login while a
// bad signature indicates tampering.
func (s *Service) Verify(tokenString string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)

	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.NewTokenExpiredError()
		}
		return nil, models.NewBadSignatureError(err)
	}
	if !token.Valid {
		return nil, models.NewBadSignatureError(nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewBadSignatureError(fmt.Errorf("unexpected claims type %T", token.Claims))
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, models.NewBadSignatureError(fmt.Errorf("token missing subject"))
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, models.NewBadSignatureError(fmt.Errorf("invalid subject %q", sub))
	}

	identity := &Identity{UserID: uint(userID)}
	if v, ok := claims["username"].(string); ok {
		identity.Username = v
	}
	if v, ok := claims["avatar"].(string); ok {
		identity.Avatar = v
	}
	return identity, nil
}

// generateJTI creates a unique token ID to prevent replay attacks.
func generateJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}
