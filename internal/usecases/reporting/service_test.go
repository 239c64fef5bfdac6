package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	loadingMocks "github.com/vfg2006/sales-dashboard-api/internal/usecases/loading/mocks"
	"go.uber.org/mock/gomock"
)

func sampleSnapshot() *domain.SalesSnapshot {
	return domain.NewSalesSnapshot("snap-1", time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), []domain.SaleRecord{
		sale("111", "Filial Centro", "80", 2024, time.February, 10),
		sale("111", "Filial Centro", "100", 2024, time.March, 5),
		sale("222", "Filial Praia", "40", 2025, time.January, 15),
		sale("111", "Filial Centro", "84", 2025, time.February, 12),
		sale("111", "Filial Centro", "200", 2025, time.March, 2),
		sale("111", "Filial Centro", "150", 2025, time.March, 10),
		// Mesmo nome com outro CNPJ: a lista usa o primeiro encontrado
		sale("333", "Filial Praia", "10", 2025, time.March, 11),
	})
}

func newTestReporter(t *testing.T) (Reporter, *loadingMocks.MockLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := loadingMocks.NewMockLoader(ctrl)
	return NewService(loader, testSettings()), loader
}

func TestService_ListBranches(t *testing.T) {
	reporter, loader := newTestReporter(t)
	loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil)

	branches, err := reporter.ListBranches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Branch{
		{TaxID: "111", Name: "Filial Centro"},
		{TaxID: "222", Name: "Filial Praia"},
	}, branches)
}

func TestService_ListBranches_ErroDoCarregador(t *testing.T) {
	reporter, loader := newTestReporter(t)
	loader.EXPECT().Snapshot(gomock.Any()).Return(nil, loading.NewDataSourceError(errors.New("conexão recusada")))

	_, err := reporter.ListBranches(context.Background())
	assert.ErrorIs(t, err, loading.ErrDataSource)
}

func TestService_AvailableMonths(t *testing.T) {
	reporter, loader := newTestReporter(t)
	loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil).Times(2)

	months, err := reporter.AvailableMonths(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, 2025, months.Year)
	assert.Equal(t, []int{2, 3}, months.Months)
	assert.Equal(t, "Filial Centro", months.Branch.Name)

	_, err = reporter.AvailableMonths(context.Background(), "999")
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestService_ResolveBranch(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTaxID string
		wantErr   error
	}{
		{name: "Por CNPJ", input: "222", wantTaxID: "222"},
		{name: "Por nome", input: "Filial Centro", wantTaxID: "111"},
		{name: "Nome sem diferenciar maiúsculas", input: "filial praia", wantTaxID: "222"},
		{name: "Inexistente", input: "Filial Norte", wantErr: ErrBranchNotFound},
		{name: "Vazio", input: "  ", wantErr: ErrBranchNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, loader := newTestReporter(t)
			loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil)

			branch, err := reporter.ResolveBranch(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTaxID, branch.TaxID)
		})
	}
}

func TestService_GetBranchReport(t *testing.T) {
	reporter, loader := newTestReporter(t)
	loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil)

	report, err := reporter.GetBranchReport(context.Background(), "111", 3)
	require.NoError(t, err)

	assert.Equal(t, "March", report.MonthName)
	assert.Equal(t, "snap-1", report.SnapshotID)
	assertDecimal(t, "350", report.Metrics.CurrentYearSales, "vendas do ano corrente")

	require.NotNil(t, report.Comparison)
	assert.Equal(t, 2, report.Comparison.PreviousMonth)

	// Fevereiro: 84 / (80 * 1.05) - 1 = 0%
	previous, ok := report.Comparison.PreviousGrowthVsTarget.Value()
	require.True(t, ok)
	assert.InDelta(t, 0.0, previous, 1e-9)

	delta, ok := report.Comparison.DeltaGrowthVsTarget.Value()
	require.True(t, ok)
	assert.InDelta(t, 233.33, delta, 0.01)

	charts := report.Charts
	require.Len(t, charts.SalesVsTarget.Points, 3)
	assert.Equal(t, "Vendas 2024", charts.SalesVsTarget.Points[0].Label)
	assert.Equal(t, 105.0, charts.SalesVsTarget.Points[1].Value)
	require.Len(t, charts.Accumulated.Points, 4)
	assert.Equal(t, 5250.0, charts.Accumulated.Points[0].Value)
	assert.Equal(t, "Início", charts.GrowthVsTarget.Points[0].Label)
	assert.Equal(t, 233.33, charts.GrowthVsTarget.Points[1].Value)
	require.NotNil(t, charts.MonthComparison)
	assert.Equal(t, "February", charts.MonthComparison.Points[0].Label)
	assert.Equal(t, "March", charts.MonthComparison.Points[1].Label)
}

func TestService_GetBranchReport_JaneiroSemComparacao(t *testing.T) {
	reporter, loader := newTestReporter(t)
	loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil)

	report, err := reporter.GetBranchReport(context.Background(), "222", 1)
	require.NoError(t, err)

	assert.Nil(t, report.Comparison, "janeiro não tem mês anterior")
	assert.Nil(t, report.Charts.MonthComparison)

	// Sem vendas em 2024 o crescimento fica indefinido, nunca zero
	assert.False(t, report.Metrics.GrowthVsPriorYear.IsDefined())
	assert.False(t, report.Charts.GrowthVsPrior.Points[1].Defined)
	assert.True(t, report.Charts.GrowthVsPrior.Points[0].Defined)
}

func TestService_GetBranchReport_DeltaIndefinido(t *testing.T) {
	reporter, loader := newTestReporter(t)
	// Abril não tem vendas em 2024, março tem
	loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil)

	report, err := reporter.GetBranchReport(context.Background(), "111", 4)
	require.NoError(t, err)

	require.NotNil(t, report.Comparison)
	assert.True(t, report.Comparison.PreviousGrowthVsTarget.IsDefined())
	assert.False(t, report.Metrics.GrowthVsTarget.IsDefined())
	assert.False(t, report.Comparison.DeltaGrowthVsTarget.IsDefined())
}

func TestService_GetBranchReport_Erros(t *testing.T) {
	t.Run("Mês inválido não consulta o carregador", func(t *testing.T) {
		reporter, _ := newTestReporter(t)

		for _, month := range []int{0, 13, -1} {
			_, err := reporter.GetBranchReport(context.Background(), "111", month)
			assert.ErrorIs(t, err, ErrInvalidMonth)

			var reportErr *ReportError
			require.ErrorAs(t, err, &reportErr)
			assert.Equal(t, "VAL_003", reportErr.ErrorCode())
		}
	})

	t.Run("Filial inexistente", func(t *testing.T) {
		reporter, loader := newTestReporter(t)
		loader.EXPECT().Snapshot(gomock.Any()).Return(sampleSnapshot(), nil)

		_, err := reporter.GetBranchReport(context.Background(), "999", 3)
		assert.ErrorIs(t, err, ErrBranchNotFound)
	})

	t.Run("Resultado vazio propagado", func(t *testing.T) {
		reporter, loader := newTestReporter(t)
		loader.EXPECT().Snapshot(gomock.Any()).Return(nil, loading.NewEmptyResultError("tbVendasDashboard"))

		_, err := reporter.GetBranchReport(context.Background(), "111", 3)
		assert.ErrorIs(t, err, loading.ErrEmptyResult)
	})
}
