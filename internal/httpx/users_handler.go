package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starboy1402/garments-tracker-api/internal/users"
)

// registerUser creates the user row on registration or first social login.
// The client re-posts on every social sign-in, so an already-registered
// email just returns the stored row.
func (a *API) registerUser(w http.ResponseWriter, r *http.Request) {
	var in users.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Email == "" || in.Name == "" {
		writeValidation(w, map[string]string{
			"email": "email is required",
			"name":  "name is required",
		})
		return
	}
	u, created, err := a.Users.Upsert(r.Context(), in)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	writeJSON(w, code, u)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := a.Users.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// getUser serves the profile/role lookup the client makes after login.
// Non-admins may only read their own record.
func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	cur, _ := UserFromContext(r.Context())
	if cur.Role != users.RoleAdmin && cur.Email != email {
		writeMessage(w, http.StatusForbidden, "forbidden")
		return
	}
	u, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type userStatusReq struct {
	Status          users.Status `json:"status"`
	SuspendedReason string       `json:"suspendedReason"`
}

// setUserStatus applies an admin decision: approve, suspend with reason, or
// reactivate (approve again, clearing the reason).
func (a *API) setUserStatus(w http.ResponseWriter, r *http.Request) {
	var req userStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := a.Users.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.SuspendedReason)
	switch {
	case errors.Is(err, users.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "user not found")
	case errors.Is(err, users.ErrReasonTooShort), errors.Is(err, users.ErrBadStatus):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, "failed to update user")
	default:
		writeJSON(w, http.StatusOK, u)
	}
}
