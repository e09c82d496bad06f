// Package courier holds the courier identity and the locally persisted
// login session.
package courier

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Courier is the backend's identity record for a delivery courier.
type Courier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Session is the locally cached courier login. It is valid strictly until
// ExpiresAt; an expired or malformed session is treated as logged out and
// never surfaced as an error.
type Session struct {
	Courier   Courier
	Token     string
	ExpiresAt time.Time
}

// NewSession creates a session for a freshly issued token. When the token
// parses as a JWT carrying an exp claim, that claim wins; otherwise the
// session expires after ttl.
func NewSession(c Courier, token string, ttl time.Duration, now time.Time) Session {
	expiresAt := now.Add(ttl)
	if claimExp, ok := tokenExpiry(token); ok && claimExp.After(now) {
		expiresAt = claimExp
	}
	return Session{Courier: c, Token: token, ExpiresAt: expiresAt}
}

// Valid reports whether the session is still usable at the given time.
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}

// tokenExpiry reads the exp claim from a JWT without verifying the
// signature. The client cannot verify server tokens; it only needs the
// expiry hint.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// sessionJSON is the persisted wire form. Expiry is stored as epoch millis.
type sessionJSON struct {
	Courier   Courier `json:"courier"`
	Token     string  `json:"token"`
	ExpiresAt int64   `json:"expiresAt"`
}

// MarshalJSON implements json.Marshaler.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		Courier:   s.Courier,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UnixMilli(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(data []byte) error {
	var v sessionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Session{
		Courier:   v.Courier,
		Token:     v.Token,
		ExpiresAt: time.UnixMilli(v.ExpiresAt),
	}
	return nil
}
