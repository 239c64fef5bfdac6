package loading

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceError(t *testing.T) {
	tests := []struct {
		name         string
		cause        error
		wantSentinel error
		wantCode     string
		wantTimeout  bool
	}{
		{
			name:         "Falha de conexão",
			cause:        errors.New("login failed for user"),
			wantSentinel: ErrDataSource,
			wantCode:     "SRV_002",
		},
		{
			name:         "Prazo esgotado no teste de conexão",
			cause:        fmt.Errorf("erro ao testar conexão (postgres): %w", context.DeadlineExceeded),
			wantSentinel: ErrLoadTimeout,
			wantCode:     "SRV_004",
			wantTimeout:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSourceError(tt.cause)

			assert.ErrorIs(t, err, tt.wantSentinel)
			assert.Equal(t, tt.wantCode, err.ErrorCode())
			assert.Equal(t, tt.wantTimeout, IsTimeout(err))
			assert.Contains(t, err.Error(), tt.cause.Error())
		})
	}
}

func TestEmptyResultError(t *testing.T) {
	var err error = NewEmptyResultError("tbVendasDashboard")

	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Equal(t, "nenhuma venda encontrada na fonte: tabela tbVendasDashboard", err.Error())

	var emptyErr *EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "DATA_001", emptyErr.ErrorCode())

	var dsErr *DataSourceError
	assert.False(t, errors.As(err, &dsErr))
}
