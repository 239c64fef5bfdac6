package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

func newSQLiteConnection(t *testing.T) *database.Connection {
	t.Helper()

	cfg := config.Database{
		Driver:  config.DriverSQLite,
		Path:    filepath.Join(t.TempDir(), "sales.db"),
		Migrate: true,
	}

	conn, err := database.NewConnection(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestSalesRepository_ListSales(t *testing.T) {
	conn := newSQLiteConnection(t)
	ctx := context.Background()

	inserts := []struct {
		name   string
		amount string
		date   string
		cnpj   string
	}{
		{"Filial Centro", "200.00", "2025-03-10", "11111111000101"},
		{"Filial Centro", "100.50", "2024-03-05", "11111111000101"},
		{"Filial Praia", "75", "2025-01-02", "22222222000102"},
	}
	for _, in := range inserts {
		_, err := conn.ExecContext(ctx,
			"INSERT INTO tbVendasDashboard (nmFilial, vlVenda, dtVenda, nrCNPJ) VALUES (?, ?, ?, ?)",
			in.name, in.amount, in.date, in.cnpj)
		require.NoError(t, err)
	}

	repo := NewSalesRepository(conn, "tbVendasDashboard")
	sales, err := repo.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)

	// Ordenado por data
	assert.Equal(t, "Filial Centro", sales[0].BranchName)
	assert.Equal(t, "11111111000101", sales[0].BranchID)
	assert.True(t, decimal.RequireFromString("100.5").Equal(sales[0].Amount), sales[0].Amount.String())
	assert.Equal(t, 2024, sales[0].Date.Year())
	assert.Equal(t, time.March, sales[0].Date.Month())
	assert.Equal(t, 5, sales[0].Date.Day())

	assert.Equal(t, "Filial Praia", sales[1].BranchName)
	assert.True(t, decimal.NewFromInt(75).Equal(sales[1].Amount))

	assert.True(t, decimal.NewFromInt(200).Equal(sales[2].Amount))
	assert.Equal(t, 10, sales[2].Date.Day())
}

func TestSalesRepository_ListSales_LinhasIncompletas(t *testing.T) {
	conn := newSQLiteConnection(t)
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `CREATE TABLE vendas_legado (nmFilial TEXT, vlVenda NUMERIC, dtVenda TEXT, nrCNPJ TEXT)`)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO vendas_legado VALUES
		('Filial Centro', NULL, '2025-03-10', '111'),
		('Filial Centro', 10, NULL, '111'),
		(' Filial Norte ', 5, '2025-03-11 14:30:00', ' 333 ')`)
	require.NoError(t, err)

	repo := NewSalesRepository(conn, "vendas_legado")
	sales, err := repo.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2, "venda sem data deve ser ignorada")

	assert.True(t, sales[0].Amount.IsZero(), "valor nulo deve contar como zero")
	assert.Equal(t, "Filial Norte", sales[1].BranchName)
	assert.Equal(t, "333", sales[1].BranchID)
	assert.Equal(t, 14, sales[1].Date.Hour())
}

func TestSalesRepository_ListSales_TabelaInexistente(t *testing.T) {
	conn := newSQLiteConnection(t)

	repo := NewSalesRepository(conn, "tabela_que_nao_existe")
	sales, err := repo.ListSales(context.Background())

	assert.Error(t, err)
	assert.Nil(t, sales)
}

func TestParseSaleDate(t *testing.T) {
	expected := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   any
		want    time.Time
		wantErr bool
	}{
		{name: "time.Time é mantido", input: expected, want: expected},
		{name: "Data simples em texto", input: "2025-03-10", want: expected},
		{name: "Data em bytes", input: []byte("2025-03-10"), want: expected},
		{name: "Data e hora", input: "2025-03-10 00:00:00", want: expected},
		{name: "RFC3339", input: "2025-03-10T00:00:00Z", want: expected},
		{name: "Texto inválido", input: "10/03/2025", wantErr: true},
		{name: "Tipo não suportado", input: int64(20250310), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSaleDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "esperado %s, obtido %s", tt.want, got)
		})
	}
}
