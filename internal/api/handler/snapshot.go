package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func GetSnapshotStatus(loader loading.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, loader.Status())
	}
}

// RefreshSnapshot recarrega as vendas da fonte e aguarda o término
func RefreshSnapshot(loader loading.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("Atualização manual do snapshot solicitada")

		if _, err := loader.Refresh(r.Context(), loading.TriggerManual); err != nil {
			logger.WithError(err).Error("Erro ao atualizar snapshot")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, loader.Status())
	}
}

// InvalidateSnapshot descarta o snapshot; a próxima consulta recarrega da fonte
func InvalidateSnapshot(loader loading.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loader.Invalidate()
		log.ForContext(r.Context()).Info("Snapshot invalidado")
		w.WriteHeader(http.StatusNoContent)
	}
}
