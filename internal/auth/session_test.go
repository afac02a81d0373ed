package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueAndCapture(t *testing.T, m *SessionManager, userID string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.IssueSession(rec, userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestIssueSessionCookieAttributes(t *testing.T) {
	m := NewSessionManager("test-signing-key", true)
	cookie := issueAndCapture(t, m, "user-1")

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(SessionMaxAge.Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	// The cookie value is a signed token, never the raw user id.
	assert.NotEqual(t, "user-1", cookie.Value)
}

func TestResolveSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("test-signing-key", false)
	cookie := issueAndCapture(t, m, "user-42")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	userID, err := m.ResolveSession(req)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestResolveSessionMissingCookie(t *testing.T) {
	m := NewSessionManager("test-signing-key", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.ResolveSession(req)
	assert.Error(t, err)
}

func TestResolveSessionRejectsForgedToken(t *testing.T) {
	m := NewSessionManager("test-signing-key", false)
	cookie := issueAndCapture(t, m, "user-1")

	// A token signed with a different key must not verify.
	other := NewSessionManager("attacker-key", false)
	forged := issueAndCapture(t, other, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged.Value})
	_, err := m.ResolveSession(req)
	assert.Error(t, err)

	// A raw user id as cookie value must not authenticate either.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "user-1"})
	_, err = m.ResolveSession(req)
	assert.Error(t, err)

	// The legitimate token still verifies.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	_, err = m.ResolveSession(req)
	assert.NoError(t, err)
}

func TestClearSessionExpiresCookie(t *testing.T) {
	m := NewSessionManager("test-signing-key", false)
	rec := httptest.NewRecorder()
	m.ClearSession(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
