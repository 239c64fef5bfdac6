package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// CronJobTypeSnapshot é o único job agendado da aplicação
const CronJobTypeSnapshot = "snapshot"

// SnapshotRefresher é implementado por scheduler.SnapshotRefreshService
type SnapshotRefresher interface {
	TriggerManualRefresh() bool
	GetStatus() map[string]any
}

// RunCronJob dispara manualmente a atualização agendada do snapshot
func RunCronJob(refresher SnapshotRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		if refresher == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização do snapshot não disponível", nil)
			return
		}

		started := refresher.TriggerManualRefresh()

		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Atualização já em andamento"
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    CronJobTypeSnapshot,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status do agendador
func GetCronStatus(refresher SnapshotRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if refresher == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização do snapshot não disponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeSnapshot: refresher.GetStatus(),
		})
	}
}
