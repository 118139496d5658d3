package httpx

import (
	"net/http"
	"strconv"
)

// getAnalytics serves the admin dashboard; period is the revenue window in
// days (default 30).
func (a *API) getAnalytics(w http.ResponseWriter, r *http.Request) {
	period := 30
	if s := r.URL.Query().Get("period"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeMessage(w, http.StatusBadRequest, "period must be a positive number of days")
			return
		}
		period = n
	}
	s, err := a.Analytics.Summary(r.Context(), period)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch analytics")
		return
	}
	writeJSON(w, http.StatusOK, s)
}
