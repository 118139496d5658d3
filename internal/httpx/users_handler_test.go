package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starboy1402/garments-tracker-api/internal/users"
)

func TestRegisterUser(t *testing.T) {
	us := fixedUsers(knownUsers())
	us.upsert = func(_ context.Context, in users.RegisterInput) (users.User, bool, error) {
		created := in.Email == "new@garments.test"
		return users.User{
			ID: "u-new", Email: in.Email, Name: in.Name,
			Role: users.RoleBuyer, Status: users.StatusPending,
		}, created, nil
	}
	env := newTestEnv(t, us, nil, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"email": "new@garments.test", "name": "New Buyer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "buyer", resp["role"])
	assert.Equal(t, "pending", resp["status"])

	// re-posting the same email returns the stored row, not a new one
	rec = env.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"email": "buyer@garments.test", "name": "Returning Buyer",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterUserMissingFields(t *testing.T) {
	env := newTestEnv(t, &stubUsers{}, nil, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/users", "", map[string]any{"email": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[struct {
		Errors map[string]string `json:"errors"`
	}](t, rec)
	assert.Contains(t, resp.Errors, "email")
}

func TestListUsersAdminOnly(t *testing.T) {
	us := fixedUsers(knownUsers())
	us.list = func(context.Context) ([]users.User, error) {
		return []users.User{{ID: "u-buyer", Email: "buyer@garments.test"}}, nil
	}
	env := newTestEnv(t, us, nil, nil, nil)

	rec := env.do(t, http.MethodGet, "/api/users", "admin@garments.test", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users", "manager@garments.test", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users", "buyer@garments.test", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	env := newTestEnv(t, fixedUsers(knownUsers()), nil, nil, nil)

	rec := env.do(t, http.MethodGet, "/api/users/buyer@garments.test", "buyer@garments.test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "buyer@garments.test", resp["email"])

	// non-admins cannot read someone else's record
	rec = env.do(t, http.MethodGet, "/api/users/manager@garments.test", "buyer@garments.test", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/buyer@garments.test", "admin@garments.test", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetUserStatus(t *testing.T) {
	us := fixedUsers(knownUsers())
	us.setStatus = func(_ context.Context, id string, status users.Status, reason string) (users.User, error) {
		if len(reason) > 0 && len(reason) < users.MinReasonLen {
			return users.User{}, users.ErrReasonTooShort
		}
		if id != "u-buyer" {
			return users.User{}, users.ErrNotFound
		}
		return users.User{ID: id, Status: status, SuspendedReason: reason}, nil
	}
	env := newTestEnv(t, us, nil, nil, nil)

	rec := env.do(t, http.MethodPatch, "/api/users/u-buyer", "admin@garments.test",
		map[string]any{"status": "suspended", "suspendedReason": "repeated payment failures"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "suspended", resp["status"])

	rec = env.do(t, http.MethodPatch, "/api/users/u-buyer", "admin@garments.test",
		map[string]any{"status": "suspended", "suspendedReason": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/users/u-gone", "admin@garments.test",
		map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/users/u-buyer", "manager@garments.test",
		map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIssueToken(t *testing.T) {
	env := newTestEnv(t, fixedUsers(knownUsers()), nil, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/auth/jwt", "", map[string]any{
		"email": "buyer@garments.test",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := env.api.Sessions.Verify(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "buyer@garments.test", claims.Email)
}

func TestIssueTokenUnknownEmail(t *testing.T) {
	env := newTestEnv(t, fixedUsers(knownUsers()), nil, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/auth/jwt", "", map[string]any{
		"email": "ghost@garments.test",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t, fixedUsers(knownUsers()), nil, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/auth/logout", "buyer@garments.test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthenticateRejectsStaleSession(t *testing.T) {
	// a valid token for a user that no longer exists reads as unauthorized
	env := newTestEnv(t, fixedUsers(knownUsers()), nil, nil, nil)

	rec := env.do(t, http.MethodGet, "/api/users/gone@garments.test", "gone@garments.test", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t, fixedUsers(knownUsers()), nil, nil, nil)

	req, rec := newRawRequest(http.MethodGet, "/api/users/buyer@garments.test")
	req.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
