package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "glucotrack_session"

// SessionMaxAge bounds the session lifetime; there is no server-side
// revocation list.
const SessionMaxAge = 7 * 24 * time.Hour

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// SessionManager issues and verifies signed session cookies. The cookie
// value is an HMAC-signed token carrying the user id, not the raw id, so a
// forged cookie does not authenticate.
type SessionManager struct {
	signingKey []byte
	secure     bool
}

// NewSessionManager creates a session manager. secure controls the cookie
// Secure attribute and should be true in production.
func NewSessionManager(signingKey string, secure bool) *SessionManager {
	return &SessionManager{
		signingKey: []byte(signingKey),
		secure:     secure,
	}
}

// IssueSession signs a token for userID and sets it as the session cookie.
func (m *SessionManager) IssueSession(w http.ResponseWriter, userID string) error {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionMaxAge)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// ResolveSession extracts the user id from the request's session cookie.
// It returns an error when the cookie is absent, expired, or the signature
// does not verify.
func (m *SessionManager) ResolveSession(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", fmt.Errorf("no session cookie: %w", err)
	}
	return m.VerifyToken(cookie.Value)
}

// VerifyToken checks the token signature and expiry and returns the user id.
func (m *SessionManager) VerifyToken(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.UserID, nil
}

// ClearSession expires the session cookie.
func (m *SessionManager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
