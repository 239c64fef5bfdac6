// Package cli formata e desenha o relatório de vendas no terminal.
package cli

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const noData = "sem dados"

// FormatMoney formata valores monetários no padrão brasileiro
func FormatMoney(value decimal.Decimal) string {
	return utils.FormatBRL(value)
}

// FormatPercentage mostra "sem dados" quando o percentual é indefinido
func FormatPercentage(p domain.Percentage) string {
	v, ok := p.Value()
	if !ok {
		return noData
	}
	return utils.FormatPercent(v)
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return noData
	}
	return t.Format("02/01/2006")
}

// FormatDelta prefixa a variação com uma seta indicando o sentido
func FormatDelta(p domain.Percentage) string {
	v, ok := p.Value()
	if !ok {
		return noData
	}

	switch {
	case v > 0:
		return "▲ " + utils.FormatPercent(v)
	case v < 0:
		return "▼ " + utils.FormatPercent(-v)
	default:
		return "= " + utils.FormatPercent(0)
	}
}
