package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	for _, name := range []string{"branches", "months", "show", "token"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestShowCmd_Validacao(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "Sem filial", args: []string{"show", "--month", "3"}, wantErr: "branch"},
		{name: "Mês fora do intervalo", args: []string{"show", "--branch", "Centro", "--month", "13"}, wantErr: "mês fora do intervalo"},
		{name: "Mês não numérico", args: []string{"show", "--branch", "Centro", "--month", "março"}, wantErr: "mês inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			showBranch, showMonth = "", ""

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
