package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessions() *Sessions {
	return &Sessions{
		Secret:     []byte("test-secret"),
		TTL:        time.Hour,
		CookieName: "token",
	}
}

func TestSignVerify(t *testing.T) {
	s := testSessions()
	tok, err := s.Sign("jane@example.com", time.Now())
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane@example.com", claims.Subject)
}

func TestVerifyExpired(t *testing.T) {
	s := testSessions()
	tok, err := s.Sign("jane@example.com", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	s := testSessions()
	tok, err := s.Sign("jane@example.com", time.Now())
	require.NoError(t, err)

	other := testSessions()
	other.Secret = []byte("other-secret")
	_, err = other.Verify(tok)
	assert.Error(t, err)
}

func TestIssueAndFromRequest(t *testing.T) {
	s := testSessions()
	rec := httptest.NewRecorder()
	require.NoError(t, s.Issue(rec, "jane@example.com"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	claims, err := s.FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestFromRequestNoCookie(t *testing.T) {
	s := testSessions()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := s.FromRequest(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	s := testSessions()
	rec := httptest.NewRecorder()
	s.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
