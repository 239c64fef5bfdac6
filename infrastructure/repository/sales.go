// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=sales.go -destination=mocks/mock_sales.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Colunas da tabela de vendas no banco de origem
const (
	columnBranchName = "nmFilial"
	columnAmount     = "vlVenda"
	columnDate       = "dtVenda"
	columnTaxID      = "nrCNPJ"
)

var saleDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

type SalesRepository interface {
	// ListSales retorna todas as vendas da tabela no momento da chamada
	ListSales(ctx context.Context) ([]domain.SaleRecord, error)
}

type salesRepository struct {
	conn  database.Conn
	table string
}

func NewSalesRepository(conn database.Conn, table string) SalesRepository {
	return &salesRepository{
		conn:  conn,
		table: table,
	}
}

func (r *salesRepository) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	query, args, err := squirrel.
		Select(columnBranchName, columnAmount, columnDate, columnTaxID).
		From(r.table).
		OrderBy(columnDate+" ASC", columnTaxID+" ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.SaleRecord, 0)
	skipped := 0
	for rows.Next() {
		sale, ok, err := scanSale(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		if !ok {
			skipped++
			continue
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"table":   r.table,
			"skipped": skipped,
		}).Warn("Vendas sem data foram ignoradas")
	}

	return sales, nil
}

// scanSale converte uma linha em SaleRecord. Linhas sem data não entram
// em nenhum filtro de período e por isso são descartadas (ok=false).
func scanSale(rows *sql.Rows) (domain.SaleRecord, bool, error) {
	var (
		name    sql.NullString
		amount  decimal.NullDecimal
		rawDate any
		taxID   sql.NullString
	)

	if err := rows.Scan(&name, &amount, &rawDate, &taxID); err != nil {
		return domain.SaleRecord{}, false, err
	}

	if rawDate == nil {
		return domain.SaleRecord{}, false, nil
	}

	date, err := parseSaleDate(rawDate)
	if err != nil {
		return domain.SaleRecord{}, false, err
	}

	sale := domain.SaleRecord{
		BranchID:   strings.TrimSpace(taxID.String),
		BranchName: strings.TrimSpace(name.String),
		Amount:     decimal.Zero,
		Date:       date,
	}
	if amount.Valid {
		sale.Amount = amount.Decimal
	}

	return sale, true, nil
}

// parseSaleDate aceita os formatos devolvidos por postgres, sqlserver e sqlite
func parseSaleDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseDateString(v)
	case []byte:
		return parseDateString(string(v))
	}

	return time.Time{}, fmt.Errorf("tipo de data não suportado: %T", value)
}

func parseDateString(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("data de venda inválida: %q", value)
}
