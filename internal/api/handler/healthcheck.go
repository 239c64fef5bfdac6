package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
)

func HealthcheckHandler(loader loading.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := loader.Status()

		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "ok",
			"time":            time.Now().Format(time.RFC3339),
			"snapshot_loaded": status.Loaded,
		})
	})
}
