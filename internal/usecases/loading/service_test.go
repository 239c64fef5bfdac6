package loading

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	messagingMocks "github.com/vfg2006/sales-dashboard-api/infrastructure/messaging/mocks"
	repoMocks "github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func sampleSales() []domain.SaleRecord {
	return []domain.SaleRecord{
		{BranchID: "111", BranchName: "Filial Centro", Amount: decimal.NewFromInt(100), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{BranchID: "111", BranchName: "Filial Centro", Amount: decimal.NewFromInt(350), Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func newTestService(t *testing.T, timeout time.Duration) (*Service, *repoMocks.MockSalesRepository, *messagingMocks.MockSnapshotPublisher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := repoMocks.NewMockSalesRepository(ctrl)
	publisher := messagingMocks.NewMockSnapshotPublisher(ctrl)

	service := NewService(repo, publisher, timeout, "tbVendasDashboard")
	service.now = func() time.Time { return time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC) }

	ids := 0
	service.newID = func() (string, error) {
		ids++
		return []string{"snap-1", "snap-2", "snap-3"}[ids-1], nil
	}

	return service, repo, publisher
}

func TestService_Snapshot_CarregaUmaVez(t *testing.T) {
	service, repo, publisher := newTestService(t, time.Second)

	repo.EXPECT().ListSales(gomock.Any()).Return(sampleSales(), nil).Times(1)
	publisher.EXPECT().
		PublishSnapshotRefreshed(gomock.Any(), domain.SnapshotRefreshedEvent{
			SnapshotID: "snap-1",
			Rows:       2,
			LoadedAt:   time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC),
			Trigger:    TriggerInitial,
		}).
		Return(nil).Times(1)

	first, err := service.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, first.Len())

	status := service.Status()
	assert.True(t, status.Loaded)
	assert.Equal(t, "snap-1", status.SnapshotID)
	assert.Equal(t, 2, status.Rows)
	assert.Empty(t, status.LastError)
}

func TestService_Snapshot_ResultadoVazio(t *testing.T) {
	service, repo, _ := newTestService(t, time.Second)

	repo.EXPECT().ListSales(gomock.Any()).Return([]domain.SaleRecord{}, nil).Times(1)

	_, err := service.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResult)

	// O erro fica em cache: nenhuma nova consulta é feita
	_, err = service.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrEmptyResult)

	var emptyErr *EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "DATA_001", emptyErr.ErrorCode())
	assert.Equal(t, "tbVendasDashboard", emptyErr.Table)

	// Resultado vazio não é confundido com falha de conexão
	var dsErr *DataSourceError
	assert.False(t, errors.As(err, &dsErr))
	assert.False(t, IsTimeout(err))
}

func TestService_Snapshot_FalhaNaFonteETerminalAteRefresh(t *testing.T) {
	service, repo, publisher := newTestService(t, time.Second)

	gomock.InOrder(
		repo.EXPECT().ListSales(gomock.Any()).Return(nil, errors.New("login failed for user")),
		repo.EXPECT().ListSales(gomock.Any()).Return(sampleSales(), nil),
	)
	publisher.EXPECT().PublishSnapshotRefreshed(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := service.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataSource)
	assert.False(t, IsTimeout(err))

	_, err = service.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrDataSource, "falha deve ser terminal sem refresh manual")
	assert.Contains(t, service.Status().LastError, "login failed")

	snapshot, err := service.Refresh(context.Background(), TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, "snap-1", snapshot.ID)
	assert.Empty(t, service.Status().LastError)
}

func TestService_Snapshot_Timeout(t *testing.T) {
	service, repo, _ := newTestService(t, 20*time.Millisecond)

	repo.EXPECT().
		ListSales(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]domain.SaleRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := service.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.ErrorIs(t, err, ErrLoadTimeout)

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "SRV_004", dsErr.ErrorCode())
}

func TestService_Invalidate(t *testing.T) {
	service, repo, publisher := newTestService(t, time.Second)

	repo.EXPECT().ListSales(gomock.Any()).Return(sampleSales(), nil).Times(2)
	publisher.EXPECT().PublishSnapshotRefreshed(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	service.Invalidate()
	assert.False(t, service.Status().Loaded)

	second, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	// Dados idênticos produzem o mesmo conjunto de registros
	assert.Equal(t, first.Records(), second.Records())
}

func TestService_Snapshot_CarregamentoCompartilhado(t *testing.T) {
	service, repo, publisher := newTestService(t, time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	repo.EXPECT().
		ListSales(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]domain.SaleRecord, error) {
			close(started)
			<-release
			return sampleSales(), nil
		}).
		Times(1)
	publisher.EXPECT().PublishSnapshotRefreshed(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var wg sync.WaitGroup
	results := make([]*domain.SalesSnapshot, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot, err := service.Snapshot(context.Background())
			assert.NoError(t, err)
			results[i] = snapshot
		}(i)
	}

	<-started
	assert.True(t, service.Status().Loading)
	close(release)
	wg.Wait()

	for _, snapshot := range results {
		require.NotNil(t, snapshot)
		assert.Equal(t, "snap-1", snapshot.ID)
	}
	assert.False(t, service.Status().Loading)
}

func TestService_Snapshot_FalhaAoPublicarNaoAfetaCarregamento(t *testing.T) {
	service, repo, publisher := newTestService(t, time.Second)

	repo.EXPECT().ListSales(gomock.Any()).Return(sampleSales(), nil)
	publisher.EXPECT().PublishSnapshotRefreshed(gomock.Any(), gomock.Any()).Return(errors.New("broker indisponível"))

	snapshot, err := service.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Len())
}

func TestService_Snapshot_ContextoCanceladoPeloChamador(t *testing.T) {
	service, repo, publisher := newTestService(t, time.Second)

	release := make(chan struct{})
	repo.EXPECT().
		ListSales(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]domain.SaleRecord, error) {
			<-release
			return sampleSales(), nil
		})
	published := make(chan struct{})
	publisher.EXPECT().
		PublishSnapshotRefreshed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.SnapshotRefreshedEvent) error {
			close(published)
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// O carregamento continua em segundo plano e fica disponível
	close(release)
	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("carregamento em segundo plano não terminou")
	}
	assert.True(t, service.Status().Loaded)
}
