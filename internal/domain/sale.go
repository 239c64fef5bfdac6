// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord representa uma linha da tabela de vendas por filial
type SaleRecord struct {
	BranchID   string          `json:"branch_id"` // CNPJ da filial
	BranchName string          `json:"branch_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// SalesSnapshot é o conjunto completo de vendas carregado de uma vez.
// Imutável depois de criado: Records devolve sempre uma cópia.
type SalesSnapshot struct {
	ID       string    `json:"id"`
	LoadedAt time.Time `json:"loaded_at"`
	records  []SaleRecord
}

func NewSalesSnapshot(id string, loadedAt time.Time, records []SaleRecord) *SalesSnapshot {
	return &SalesSnapshot{
		ID:       id,
		LoadedAt: loadedAt,
		records:  slices.Clone(records),
	}
}

func (s *SalesSnapshot) Records() []SaleRecord {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records)
}

func (s *SalesSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// SnapshotRefreshedEvent é publicado quando um novo snapshot é carregado
type SnapshotRefreshedEvent struct {
	SnapshotID string    `json:"snapshot_id"`
	Rows       int       `json:"rows"`
	LoadedAt   time.Time `json:"loaded_at"`
	Trigger    string    `json:"trigger"`
}
