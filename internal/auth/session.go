package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionState classifies a locally held token without a network round trip.
type SessionState int

const (
	// SessionAbsent means no token, or one too mangled to carry claims.
	SessionAbsent SessionState = iota
	// SessionExpired means the token's exp claim is in the past; the holder
	// should clear derived session state and re-authenticate.
	SessionExpired
	// SessionValid means the token's exp claim is still in the future.
	SessionValid
)

func (s SessionState) String() string {
	switch s {
	case SessionExpired:
		return "expired"
	case SessionValid:
		return "valid"
	default:
		return "absent"
	}
}

// EvaluateSession inspects the exp claim of a token against the given clock.
// It deliberately does NOT verify the signature: it answers the UI-shell
// question "is it worth presenting this token at all", and the server-side
// Verify remains the authority on every request. The core never navigates;
// callers decide what to do with the returned state.
func EvaluateSession(tokenString string, now time.Time) SessionState {
	if tokenString == "" {
		return SessionAbsent
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return SessionAbsent
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return SessionAbsent
	}
	if !exp.After(now) {
		return SessionExpired
	}
	return SessionValid
}
