package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
)

// SnapshotRefreshConfig representa a configuração do agendador de atualização do snapshot
type SnapshotRefreshConfig struct {
	CronSchedule string
	Enabled      bool
	Timeout      time.Duration
}

// SnapshotRefreshService agenda e executa a recarga do snapshot de vendas
type SnapshotRefreshService struct {
	scheduler         *gocron.Scheduler
	config            SnapshotRefreshConfig
	loader            loading.Loader
	refreshRunning    bool
	refreshMutex      sync.Mutex
	lastStartedAt     time.Time
	lastCompletedAt   time.Time
	lastError         string
	lastTrigger       string
	completedRefreshs int
}

// NewSnapshotRefreshService cria o serviço de atualização; o agendamento só é
// ativado quando SNAPSHOT_REFRESH_ENABLED=true
func NewSnapshotRefreshService(loader loading.Loader, appConfig *config.Config) *SnapshotRefreshService {
	refreshConfig := SnapshotRefreshConfig{
		CronSchedule: appConfig.SnapshotRefresh.CronSchedule,
		Enabled:      appConfig.SnapshotRefresh.Enabled,
		// Margem sobre o limite do carregador para o contexto do job
		Timeout: appConfig.Database.LoadTimeout + 5*time.Second,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   refreshConfig.CronSchedule,
		"refresh_enabled": refreshConfig.Enabled,
	}).Info("Configuração do agendador de atualização do snapshot carregada")

	return &SnapshotRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		loader:    loader,
	}
}

// Start inicia o agendador
func (s *SnapshotRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização agendada do snapshot desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização do snapshot")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(loading.TriggerCron)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização do snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh recarrega o snapshot; execuções sobrepostas são ignoradas
func (s *SnapshotRefreshService) refresh(trigger string) {
	if !s.begin(trigger) {
		logrus.WithField("trigger", trigger).Info("Atualização do snapshot já em andamento, ignorando")
		return
	}

	s.run(trigger)
}

// run executa uma atualização já marcada por begin
func (s *SnapshotRefreshService) run(trigger string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	snapshot, err := s.loader.Refresh(ctx, trigger)

	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	s.refreshRunning = false
	s.lastCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithFields(logrus.Fields{
			"trigger": trigger,
			"error":   err.Error(),
		}).Error("Erro ao atualizar snapshot de vendas")
		return
	}

	s.lastError = ""
	s.completedRefreshs++

	logrus.WithFields(logrus.Fields{
		"trigger":     trigger,
		"snapshot_id": snapshot.ID,
		"rows":        snapshot.Len(),
		"duration":    time.Since(startTime).String(),
	}).Info("Atualização do snapshot concluída")
}

func (s *SnapshotRefreshService) begin(trigger string) bool {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	if s.refreshRunning {
		return false
	}

	s.refreshRunning = true
	s.lastStartedAt = time.Now()
	s.lastTrigger = trigger
	return true
}

// TriggerManualRefresh inicia manualmente uma atualização em segundo plano.
// Retorna falso quando já existe uma atualização em andamento.
func (s *SnapshotRefreshService) TriggerManualRefresh() bool {
	if !s.begin(loading.TriggerManual) {
		logrus.Info("Atualização do snapshot já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando atualização manual do snapshot")
	go s.run(loading.TriggerManual)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotRefreshService) GetStatus() map[string]any {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	return map[string]any{
		"refresh_running":   s.refreshRunning,
		"refresh_cron":      s.config.CronSchedule,
		"refresh_enabled":   s.config.Enabled,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_trigger":      s.lastTrigger,
		"last_error":        s.lastError,
		"completed":         s.completedRefreshs,
		"snapshot":          s.loader.Status(),
	}
}
