package httpx

import (
	"context"
	"net/http"

	"github.com/starboy1402/garments-tracker-api/internal/access"
	"github.com/starboy1402/garments-tracker-api/internal/users"
)

type ctxKey int

const userCtxKey ctxKey = iota

// UserFromContext returns the authenticated user placed by Authenticate.
func UserFromContext(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(userCtxKey).(users.User)
	return u, ok
}

// Authenticate verifies the session cookie and loads the current user row.
// Role and status come from the database on every request, so admin
// decisions (approve/suspend) take effect immediately. A 401 tells the
// client to redirect to login.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.Sessions.FromRequest(r)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		u, err := a.Users.GetByEmail(r.Context(), claims.Email)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey, u)))
	})
}

// Require gates a route on the permission table. Must run after Authenticate.
func (a *API) Require(action access.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !access.Can(u.Role, u.Status, action) {
				writeMessage(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
