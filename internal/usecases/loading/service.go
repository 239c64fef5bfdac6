// Package loading mantém o snapshot de vendas carregado da fonte relacional
package loading

//go:generate mockgen -source=service.go -destination=mocks/mock_loader.go -package=mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/messaging"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/sync/singleflight"
)

// Origem de um carregamento, enviada no evento de snapshot
const (
	TriggerInitial = "initial"
	TriggerManual  = "manual"
	TriggerCron    = "cron"
)

const loadKey = "snapshot"

type Loader interface {
	// Snapshot devolve o snapshot em memória, carregando na primeira chamada
	Snapshot(ctx context.Context) (*domain.SalesSnapshot, error)
	// Refresh descarta o estado atual e recarrega da fonte
	Refresh(ctx context.Context, trigger string) (*domain.SalesSnapshot, error)
	// Invalidate limpa snapshot e erro; a próxima chamada de Snapshot recarrega
	Invalidate()
	Status() Status
}

// Status resume o estado do carregador para a API e o CLI
type Status struct {
	Loaded     bool       `json:"loaded"`
	SnapshotID string     `json:"snapshot_id,omitempty"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
	Rows       int        `json:"rows"`
	LastError  string     `json:"last_error,omitempty"`
	Loading    bool       `json:"loading"`
}

type Service struct {
	repo      repository.SalesRepository
	publisher messaging.SnapshotPublisher
	timeout   time.Duration
	table     string
	now       func() time.Time
	newID     func() (string, error)

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *domain.SalesSnapshot
	lastErr  error
	loading  bool
	// generation muda a cada Invalidate/Refresh, descartando resultados antigos
	generation uint64
}

func NewService(
	repo repository.SalesRepository,
	publisher messaging.SnapshotPublisher,
	timeout time.Duration,
	table string,
) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		timeout:   timeout,
		table:     table,
		now:       time.Now,
		newID:     utils.GenerateID,
	}
}

func (s *Service) Snapshot(ctx context.Context) (*domain.SalesSnapshot, error) {
	s.mu.RLock()
	snapshot, lastErr := s.snapshot, s.lastErr
	s.mu.RUnlock()

	if snapshot != nil {
		return snapshot, nil
	}

	// Falha de carregamento é terminal até um Refresh ou Invalidate manual
	if lastErr != nil {
		return nil, lastErr
	}

	return s.load(ctx, TriggerInitial, false)
}

func (s *Service) Refresh(ctx context.Context, trigger string) (*domain.SalesSnapshot, error) {
	s.mu.Lock()
	s.lastErr = nil
	s.generation++
	s.mu.Unlock()

	// Um carregamento em andamento iniciado antes do Refresh não deve ser reaproveitado
	s.group.Forget(loadKey)

	return s.load(ctx, trigger, true)
}

func (s *Service) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.lastErr = nil
	s.generation++
	s.mu.Unlock()

	s.group.Forget(loadKey)

	logrus.Info("Snapshot de vendas invalidado")
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Loaded:  s.snapshot != nil,
		Loading: s.loading,
	}

	if s.snapshot != nil {
		loadedAt := s.snapshot.LoadedAt
		status.SnapshotID = s.snapshot.ID
		status.LoadedAt = &loadedAt
		status.Rows = s.snapshot.Len()
	}

	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}

	return status
}

func (s *Service) load(ctx context.Context, trigger string, force bool) (*domain.SalesSnapshot, error) {
	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	ch := s.group.DoChan(loadKey, func() (any, error) {
		// Outro chamador pode ter concluído o carregamento entre a leitura e o DoChan
		if !force {
			if snapshot, ok, err := s.cached(generation); ok {
				return snapshot, err
			}
		}
		return s.fetch(ctx, trigger, generation)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.SalesSnapshot), nil
	}
}

func (s *Service) cached(generation uint64) (*domain.SalesSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.generation != generation {
		return nil, false, nil
	}
	if s.snapshot != nil {
		return s.snapshot, true, nil
	}
	if s.lastErr != nil {
		return nil, true, s.lastErr
	}
	return nil, false, nil
}

// fetch executa a consulta com o tempo limite configurado. O contexto do primeiro
// chamador não cancela o carregamento compartilhado, apenas o limite de tempo.
func (s *Service) fetch(ctx context.Context, trigger string, generation uint64) (*domain.SalesSnapshot, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := s.now()
	logrus.WithFields(logrus.Fields{
		"trigger": trigger,
		"table":   s.table,
	}).Info("Carregando vendas da fonte de dados")

	records, err := s.repo.ListSales(loadCtx)
	if err != nil {
		loadErr := NewSourceError(err)
		if errors.Is(loadCtx.Err(), context.DeadlineExceeded) {
			loadErr = NewTimeoutError(err)
		}
		return nil, s.fail(generation, loadErr)
	}

	if len(records) == 0 {
		return nil, s.fail(generation, NewEmptyResultError(s.table))
	}

	id, err := s.newID()
	if err != nil {
		return nil, s.fail(generation, &DataSourceError{Err: ErrGenerateID, Code: apiErrors.ErrInternalServer, Details: err.Error()})
	}

	snapshot := domain.NewSalesSnapshot(id, s.now(), records)

	s.mu.Lock()
	if s.generation == generation {
		s.snapshot = snapshot
		s.lastErr = nil
	}
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"rows":        snapshot.Len(),
		"trigger":     trigger,
		"duration_ms": s.now().Sub(start).Milliseconds(),
	}).Info("Snapshot de vendas carregado")

	s.publish(loadCtx, snapshot, trigger)

	return snapshot, nil
}

func (s *Service) fail(generation uint64, err error) error {
	s.mu.Lock()
	if s.generation == generation {
		s.snapshot = nil
		s.lastErr = err
	}
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"error":   err.Error(),
		"timeout": IsTimeout(err),
		"table":   s.table,
	}).Error("Falha ao carregar vendas")

	return err
}

// publish só registra falhas; o snapshot já está disponível para leitura
func (s *Service) publish(ctx context.Context, snapshot *domain.SalesSnapshot, trigger string) {
	if s.publisher == nil {
		return
	}

	event := domain.SnapshotRefreshedEvent{
		SnapshotID: snapshot.ID,
		Rows:       snapshot.Len(),
		LoadedAt:   snapshot.LoadedAt,
		Trigger:    trigger,
	}

	if err := s.publisher.PublishSnapshotRefreshed(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"snapshot_id": snapshot.ID,
			"error":       err.Error(),
		}).Warn("Falha ao publicar evento de snapshot")
	}
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
