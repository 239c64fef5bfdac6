package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorBlue      = lipgloss.Color("#4385BE")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	barStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(24)
)

const barWidth = 30

// Table é uma tabela com bordas para saída no terminal
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle desenha o título centralizado em uma caixa
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(78).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable desenha a tabela; a linha {"---"} vira separador.
// A primeira coluna é alinhada à esquerda e as demais à direita.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], utf8.RuneCountInString(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(border("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], false) + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(border("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(border("├", "┼", "┤", widths))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(" " + pad(cell, widths[i], i > 0) + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(border("╰", "┴", "╯", widths))

	return b.String()
}

func border(left, middle, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, middle)+right) + "\n"
}

// pad completa com espaços contando runas, não bytes (acentos e "R$")
func pad(s string, width int, right bool) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderTile desenha um indicador com rótulo e valor
func RenderTile(label, value string) string {
	return tileStyle.Render(mutedStyle.Render(label) + "\n" + valueStyle.Bold(true).Render(value))
}

// RenderBars desenha uma série como barras horizontais proporcionais ao maior valor
func RenderBars(series domain.ChartSeries, format func(domain.ChartPoint) string) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(series.Title))
	b.WriteString("\n")

	labelWidth := 0
	maxValue := 0.0
	for _, p := range series.Points {
		labelWidth = max(labelWidth, utf8.RuneCountInString(p.Label))
		if p.Defined {
			maxValue = max(maxValue, abs(p.Value))
		}
	}

	for _, p := range series.Points {
		bar := ""
		if p.Defined && maxValue > 0 {
			bar = strings.Repeat("█", int(abs(p.Value)/maxValue*barWidth))
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			mutedStyle.Render(pad(p.Label, labelWidth, false)),
			barStyle.Render(pad(bar, barWidth, false)),
			valueStyle.Render(format(p)),
		)
	}

	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func moneyLabel(p domain.ChartPoint) string {
	if !p.Defined {
		return noData
	}
	return FormatMoney(decimal.NewFromFloat(p.Value))
}

func percentLabel(p domain.ChartPoint) string {
	if !p.Defined {
		return noData
	}
	return utils.FormatPercent(p.Value)
}

// RenderBranches lista as filiais disponíveis
func RenderBranches(branches []domain.Branch) string {
	rows := make([][]string, 0, len(branches))
	for _, br := range branches {
		rows = append(rows, []string{br.Name, br.TaxID})
	}

	return RenderTable(Table{
		Title:   fmt.Sprintf("Filiais (%d)", len(branches)),
		Headers: []string{"Filial", "CNPJ"},
		Rows:    rows,
	})
}

// RenderMonths lista os meses com vendas da filial no ano corrente
func RenderMonths(months *domain.AvailableMonths) string {
	rows := make([][]string, 0, len(months.Months))
	for _, m := range months.Months {
		rows = append(rows, []string{fmt.Sprint(m), utils.MonthName(m)})
	}

	return RenderTable(Table{
		Title:   fmt.Sprintf("%s · meses com vendas em %d", months.Branch.Name, months.Year),
		Headers: []string{"Mês", "Nome"},
		Rows:    rows,
	})
}

// RenderReport desenha o painel completo de uma filial
func RenderReport(report *domain.BranchReport) string {
	m := report.Metrics

	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("%s  ·  %s %d", report.Branch.Name, report.MonthName, m.CurrentYear)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		RenderTile(fmt.Sprintf("Vendas %d", m.PriorYear), FormatMoney(m.PriorYearSales)),
		RenderTile(fmt.Sprintf("Meta %d", m.CurrentYear), FormatMoney(m.Target)),
		RenderTile(fmt.Sprintf("Vendas %d", m.CurrentYear), FormatMoney(m.CurrentYearSales)),
	))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		RenderTile("Crescimento s/ ano anterior", FormatPercentage(m.GrowthVsPriorYear)),
		RenderTile("Crescimento s/ meta", FormatPercentage(m.GrowthVsTarget)),
		RenderTile("Última venda", FormatDate(m.LastSaleDate)),
	))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Início do período", m.PeriodStart.Format("02/01/2006")},
		{"Acumulado ano anterior", FormatMoney(m.AccumulatedPrior)},
		{"Acumulado atual", FormatMoney(m.AccumulatedCurrent)},
		{"Meta acumulada", FormatMoney(m.AccumulatedTarget)},
		{"---"},
		{"Média diária", FormatMoney(m.DailyAverage)},
		{"Dias com venda", fmt.Sprint(m.SalesDays)},
		{"Previsão", FormatMoney(m.Forecast)},
	}
	if c := report.Comparison; c != nil {
		rows = append(rows,
			[]string{"---"},
			[]string{"Crescimento s/ meta em " + utils.MonthName(c.PreviousMonth), FormatPercentage(c.PreviousGrowthVsTarget)},
			[]string{"Variação contra o mês anterior", FormatDelta(c.DeltaGrowthVsTarget)},
		)
	}

	b.WriteString(RenderTable(Table{
		Title:   "Indicadores",
		Headers: []string{"Indicador", "Valor"},
		Rows:    rows,
	}))
	b.WriteString("\n")

	b.WriteString(RenderBars(report.Charts.SalesVsTarget, moneyLabel))
	b.WriteString("\n")
	b.WriteString(RenderBars(report.Charts.Accumulated, moneyLabel))
	b.WriteString("\n")
	b.WriteString(RenderBars(report.Charts.GrowthVsPrior, percentLabel))
	b.WriteString("\n")
	b.WriteString(RenderBars(report.Charts.GrowthVsTarget, percentLabel))
	if report.Charts.MonthComparison != nil {
		b.WriteString("\n")
		b.WriteString(RenderBars(*report.Charts.MonthComparison, percentLabel))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  snapshot " + report.SnapshotID))
	b.WriteString("\n")

	return b.String()
}
