package http

import (
	"net/http"
	"time"

	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/authsdk"
	"github.com/carefinder/carefinder/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It reports degraded with a 503 when
// the database is unreachable.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
