package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Settings são as regras de negócio aplicadas no cálculo
type Settings struct {
	CurrentYear      int
	TargetGrowthRate decimal.Decimal
	ForecastDays     int
}

func NewSettings(cfg config.Report) Settings {
	return Settings{
		CurrentYear:      cfg.CurrentYear,
		TargetGrowthRate: decimal.NewFromFloat(cfg.TargetGrowthRate),
		ForecastDays:     cfg.ForecastDays,
	}
}

func (s Settings) PriorYear() int {
	return s.CurrentYear - 1
}

func (s Settings) growthFactor() decimal.Decimal {
	return one.Add(s.TargetGrowthRate)
}

// Calculate calcula as métricas da filial (por CNPJ) para o mês de referência.
// Função pura: os mesmos registros sempre produzem o mesmo resultado.
func Calculate(records []domain.SaleRecord, taxID string, month int, settings Settings) domain.SalesMetrics {
	priorYear := settings.PriorYear()

	metrics := domain.SalesMetrics{
		Month:              month,
		CurrentYear:        settings.CurrentYear,
		PriorYear:          priorYear,
		PriorYearSales:     decimal.Zero,
		CurrentYearSales:   decimal.Zero,
		AccumulatedCurrent: decimal.Zero,
		DailyAverage:       decimal.Zero,
		PeriodStart:        utils.FirstDayOfMonth(settings.CurrentYear, month),
	}

	var lastSale *time.Time
	for _, r := range records {
		if r.BranchID != taxID || int(r.Date.Month()) != month {
			continue
		}

		switch r.Date.Year() {
		case priorYear:
			metrics.PriorYearSales = metrics.PriorYearSales.Add(r.Amount)
		case settings.CurrentYear:
			metrics.CurrentYearSales = metrics.CurrentYearSales.Add(r.Amount)
			if lastSale == nil || r.Date.After(*lastSale) {
				date := r.Date
				lastSale = &date
			}
		}
	}

	metrics.Target = metrics.PriorYearSales.Mul(settings.growthFactor())
	metrics.LastSaleDate = lastSale
	metrics.AccumulatedPrior = metrics.PriorYearSales
	metrics.AccumulatedTarget = metrics.AccumulatedPrior.Mul(settings.growthFactor())

	if lastSale != nil {
		windowSum, days := salesInWindow(records, taxID, settings.CurrentYear, month, *lastSale)
		metrics.AccumulatedCurrent = windowSum
		metrics.SalesDays = days
		if days > 0 {
			metrics.DailyAverage = windowSum.Div(decimal.NewFromInt(int64(days)))
		}
	}

	metrics.Forecast = metrics.DailyAverage.Mul(decimal.NewFromInt(int64(settings.ForecastDays)))
	metrics.GrowthVsPriorYear = growth(metrics.CurrentYearSales, metrics.PriorYearSales)
	metrics.GrowthVsTarget = growth(metrics.CurrentYearSales, metrics.AccumulatedTarget)

	return metrics
}

// salesInWindow soma as vendas do mês de referência entre o dia 1 e o dia da última venda,
// contando os dias distintos com venda. A comparação usa a data de calendário de cada
// registro, no fuso em que foi lido, para que o instante em UTC não mude o mês.
func salesInWindow(records []domain.SaleRecord, taxID string, year, month int, lastSale time.Time) (decimal.Decimal, int) {
	sum := decimal.Zero
	days := make(map[time.Time]struct{})
	_, _, lastDay := lastSale.Date()

	for _, r := range records {
		if r.BranchID != taxID {
			continue
		}

		y, m, d := r.Date.Date()
		if y != year || int(m) != month || d > lastDay {
			continue
		}

		sum = sum.Add(r.Amount)
		days[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)] = struct{}{}
	}

	return sum, len(days)
}

// growth retorna (value/base - 1) * 100, indefinido quando a base é zero
func growth(value, base decimal.Decimal) domain.Percentage {
	if base.IsZero() {
		return domain.UndefinedPercentage()
	}

	return domain.NewPercentage(value.Div(base).Sub(one).Mul(hundred).InexactFloat64())
}
