package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMonth converte "1".."12" para inteiro, rejeitando qualquer outro valor
func ParseMonth(value string) (int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("mês inválido %q: %w", value, err)
	}

	if month < 1 || month > 12 {
		return 0, fmt.Errorf("mês fora do intervalo 1-12: %d", month)
	}

	return month, nil
}

func FirstDayOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthName devolve o nome do mês em inglês ("January".."December")
func MonthName(month int) string {
	return time.Month(month).String()
}
