package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/starboy1402/garments-tracker-api/internal/users"
)

type tokenReq struct {
	Email string `json:"email"`
}

// issueToken exchanges a provider-verified email for the session cookie.
// The identity provider has already authenticated the caller; an email that
// was never registered gets no session.
func (a *API) issueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "email is required")
		return
	}
	if _, err := a.Users.GetByEmail(r.Context(), req.Email); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	if err := a.Sessions.Issue(w, req.Email); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	a.Sessions.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
