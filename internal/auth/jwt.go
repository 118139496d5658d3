// Package auth issues and verifies the cookie-based session credential.
// Identity verification itself happens at the external provider; this
// service only binds a verified email to a signed session token.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no session")

// Claims holds the typed JWT payload. Role and status are deliberately not
// embedded: they are re-read from the database on every request so that an
// admin's approve/suspend takes effect immediately.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions signs, verifies and transports session tokens.
type Sessions struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func (s *Sessions) Sign(email string, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *Sessions) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Issue writes a signed session cookie for the given email.
func (s *Sessions) Issue(w http.ResponseWriter, email string) error {
	token, err := s.Sign(email, time.Now())
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest extracts and verifies the session cookie.
func (s *Sessions) FromRequest(r *http.Request) (*Claims, error) {
	c, err := r.Cookie(s.CookieName)
	if err != nil || c.Value == "" {
		return nil, ErrNoSession
	}
	return s.Verify(c.Value)
}
