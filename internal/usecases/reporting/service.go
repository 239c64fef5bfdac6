// Package reporting calcula o relatório de vendas x meta de uma filial
package reporting

//go:generate mockgen -source=service.go -destination=mocks/mock_reporter.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type Reporter interface {
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	AvailableMonths(ctx context.Context, taxID string) (*domain.AvailableMonths, error)
	GetBranchReport(ctx context.Context, taxID string, month int) (*domain.BranchReport, error)
	// ResolveBranch encontra a filial pelo CNPJ ou pelo nome
	ResolveBranch(ctx context.Context, nameOrTaxID string) (*domain.Branch, error)
}

type Service struct {
	loader   loading.Loader
	settings Settings
}

func NewService(loader loading.Loader, settings Settings) Reporter {
	return &Service{
		loader:   loader,
		settings: settings,
	}
}

func (s *Service) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	snapshot, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return listBranches(snapshot.Records()), nil
}

func (s *Service) AvailableMonths(ctx context.Context, taxID string) (*domain.AvailableMonths, error) {
	snapshot, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records := snapshot.Records()
	branch, ok := findBranch(listBranches(records), taxID)
	if !ok {
		return nil, newBranchNotFoundError(taxID)
	}

	return &domain.AvailableMonths{
		Branch: branch,
		Year:   s.settings.CurrentYear,
		Months: availableMonths(records, taxID, s.settings.CurrentYear),
	}, nil
}

func (s *Service) ResolveBranch(ctx context.Context, nameOrTaxID string) (*domain.Branch, error) {
	snapshot, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	branch, ok := findBranch(listBranches(snapshot.Records()), nameOrTaxID)
	if !ok {
		return nil, newBranchNotFoundError(nameOrTaxID)
	}

	return &branch, nil
}

func (s *Service) GetBranchReport(ctx context.Context, taxID string, month int) (*domain.BranchReport, error) {
	if month < 1 || month > 12 {
		return nil, newInvalidMonthError(month)
	}

	snapshot, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records := snapshot.Records()
	branch, ok := findBranch(listBranches(records), taxID)
	if !ok {
		return nil, newBranchNotFoundError(taxID)
	}

	metrics := Calculate(records, branch.TaxID, month, s.settings)

	report := &domain.BranchReport{
		Branch:     branch,
		MonthName:  utils.MonthName(month),
		SnapshotID: snapshot.ID,
		Metrics:    metrics,
	}

	// Janeiro não tem mês anterior no mesmo ano: a comparação fica ausente
	if month > 1 {
		previous := Calculate(records, branch.TaxID, month-1, s.settings)
		report.Comparison = &domain.MonthComparison{
			PreviousMonth:          month - 1,
			PreviousGrowthVsTarget: previous.GrowthVsTarget,
			DeltaGrowthVsTarget:    metrics.GrowthVsTarget.Sub(previous.GrowthVsTarget),
		}
	}

	report.Charts = buildCharts(metrics, report.Comparison)

	logrus.WithFields(logrus.Fields{
		"branch_tax_id": branch.TaxID,
		"branch_name":   branch.Name,
		"month":         month,
		"snapshot_id":   snapshot.ID,
	}).Debug("Relatório de filial calculado")

	return report, nil
}

// listBranches devolve os nomes distintos em ordem alfabética, cada um com o
// CNPJ do primeiro registro encontrado para aquele nome
func listBranches(records []domain.SaleRecord) []domain.Branch {
	byName := make(map[string]string)
	for _, r := range records {
		if r.BranchName == "" {
			continue
		}
		if _, exists := byName[r.BranchName]; !exists {
			byName[r.BranchName] = r.BranchID
		}
	}

	branches := make([]domain.Branch, 0, len(byName))
	for name, taxID := range byName {
		branches = append(branches, domain.Branch{TaxID: taxID, Name: name})
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})

	return branches
}

func findBranch(branches []domain.Branch, nameOrTaxID string) (domain.Branch, bool) {
	key := strings.TrimSpace(nameOrTaxID)
	if key == "" {
		return domain.Branch{}, false
	}

	for _, b := range branches {
		if b.TaxID == key {
			return b, true
		}
	}

	for _, b := range branches {
		if strings.EqualFold(b.Name, key) {
			return b, true
		}
	}

	return domain.Branch{}, false
}

func availableMonths(records []domain.SaleRecord, taxID string, year int) []int {
	months := make([]int, 0, 12)
	for _, r := range records {
		if r.BranchID != taxID || r.Date.Year() != year {
			continue
		}
		month := int(r.Date.Month())
		if !slices.Contains(months, month) {
			months = append(months, month)
		}
	}

	slices.Sort(months)
	return months
}

func buildCharts(m domain.SalesMetrics, comparison *domain.MonthComparison) domain.ReportCharts {
	current := fmt.Sprint(m.CurrentYear)
	prior := fmt.Sprint(m.PriorYear)

	charts := domain.ReportCharts{
		SalesVsTarget: domain.ChartSeries{
			Title: "Vendas x Meta x Realizado",
			Points: []domain.ChartPoint{
				moneyPoint("Vendas "+prior, m.PriorYearSales),
				moneyPoint("Meta "+current, m.Target),
				moneyPoint("Vendas "+current, m.CurrentYearSales),
			},
		},
		Accumulated: domain.ChartSeries{
			Title: "Acumulados do Mês",
			Points: []domain.ChartPoint{
				moneyPoint("Previsão "+current, m.Forecast),
				moneyPoint("Acum. "+prior, m.AccumulatedPrior),
				moneyPoint("Acum. Meta", m.AccumulatedTarget),
				moneyPoint("Acum. "+current, m.AccumulatedCurrent),
			},
		},
		GrowthVsPrior: domain.ChartSeries{
			Title: "Crescimento de Vendas em " + current,
			Points: []domain.ChartPoint{
				percentPoint("Início", domain.NewPercentage(0)),
				percentPoint("Atual", m.GrowthVsPriorYear),
			},
		},
		GrowthVsTarget: domain.ChartSeries{
			Title: "Crescimento sobre a Meta",
			Points: []domain.ChartPoint{
				percentPoint("Início", domain.NewPercentage(0)),
				percentPoint("Atual", m.GrowthVsTarget),
			},
		},
	}

	if comparison != nil {
		charts.MonthComparison = &domain.ChartSeries{
			Title: "Comparativo de Crescimento sobre Meta: Mês Atual vs Mês Anterior",
			Points: []domain.ChartPoint{
				percentPoint(utils.MonthName(comparison.PreviousMonth), comparison.PreviousGrowthVsTarget),
				percentPoint(utils.MonthName(m.Month), m.GrowthVsTarget),
			},
		}
	}

	return charts
}

func moneyPoint(label string, value decimal.Decimal) domain.ChartPoint {
	return domain.ChartPoint{
		Label:   label,
		Value:   value.Round(2).InexactFloat64(),
		Defined: true,
	}
}

// percentPoint marca como indefinido em vez de desenhar zero
func percentPoint(label string, p domain.Percentage) domain.ChartPoint {
	v, ok := p.Value()
	if !ok {
		return domain.ChartPoint{Label: label}
	}
	return domain.ChartPoint{
		Label:   label,
		Value:   utils.RoundWithTwoDecimalPlace(v),
		Defined: true,
	}
}
