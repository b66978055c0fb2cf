package handlers

import (
	"net/http"

	"github.com/mailtrace/internal/store"
)

// HealthHandler reports service liveness and, when configured, database
// reachability.
type HealthHandler struct {
	Store *store.Store
}

// Health returns 200 when the service is up. The database field is
// "disabled" when persistence is not configured, otherwise "ok" or the
// ping error.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "database": "disabled"}
	status := http.StatusOK
	if h.Store != nil {
		if err := h.Store.DB.Ping(); err != nil {
			resp["database"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp["database"] = "ok"
		}
	}
	writeJSON(w, status, resp)
}
