package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Branch representa uma filial presente nos dados carregados
type Branch struct {
	TaxID string `json:"tax_id"` // CNPJ
	Name  string `json:"name"`
}

// AvailableMonths representa os meses com vendas no ano corrente para uma filial
type AvailableMonths struct {
	Branch Branch `json:"branch"`
	Year   int    `json:"year"`
	Months []int  `json:"months"`
}

// SalesMetrics é o resultado do cálculo de metas para uma filial e um mês
type SalesMetrics struct {
	Month              int             `json:"month"`
	CurrentYear        int             `json:"current_year"`
	PriorYear          int             `json:"prior_year"`
	PriorYearSales     decimal.Decimal `json:"prior_year_sales"`
	Target             decimal.Decimal `json:"target"`
	CurrentYearSales   decimal.Decimal `json:"current_year_sales"`
	LastSaleDate       *time.Time      `json:"last_sale_date"`
	PeriodStart        time.Time       `json:"period_start"`
	AccumulatedPrior   decimal.Decimal `json:"accumulated_prior"`
	AccumulatedCurrent decimal.Decimal `json:"accumulated_current"`
	AccumulatedTarget  decimal.Decimal `json:"accumulated_target"`
	DailyAverage       decimal.Decimal `json:"daily_average"`
	SalesDays          int             `json:"sales_days"`
	Forecast           decimal.Decimal `json:"forecast"`
	GrowthVsPriorYear  Percentage      `json:"growth_vs_prior_year"`
	GrowthVsTarget     Percentage      `json:"growth_vs_target"`
}

// MonthComparison compara o crescimento sobre a meta com o mês anterior
type MonthComparison struct {
	PreviousMonth          int        `json:"previous_month"`
	PreviousGrowthVsTarget Percentage `json:"previous_growth_vs_target"`
	DeltaGrowthVsTarget    Percentage `json:"delta_growth_vs_target"`
}

// ChartPoint é um ponto de uma série enviada para a camada de apresentação
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	// Defined é falso quando o valor vem de um percentual indefinido
	Defined bool `json:"defined"`
}

type ChartSeries struct {
	Title  string       `json:"title"`
	Points []ChartPoint `json:"points"`
}

type ReportCharts struct {
	SalesVsTarget   ChartSeries  `json:"sales_vs_target"`
	Accumulated     ChartSeries  `json:"accumulated"`
	GrowthVsPrior   ChartSeries  `json:"growth_vs_prior"`
	GrowthVsTarget  ChartSeries  `json:"growth_vs_target"`
	MonthComparison *ChartSeries `json:"month_comparison,omitempty"`
}

// BranchReport é o contrato entregue para a camada de apresentação
type BranchReport struct {
	Branch     Branch           `json:"branch"`
	MonthName  string           `json:"month_name"`
	SnapshotID string           `json:"snapshot_id"`
	Metrics    SalesMetrics     `json:"metrics"`
	Comparison *MonthComparison `json:"comparison,omitempty"`
	Charts     ReportCharts     `json:"charts"`
}
