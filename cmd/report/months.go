package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/internal/cli"
)

var monthsBranch string

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Lista os meses do ano corrente com vendas da filial",
	RunE:  runMonths,
}

func init() {
	monthsCmd.Flags().StringVarP(&monthsBranch, "branch", "b", "", "Nome ou CNPJ da filial")
	_ = monthsCmd.MarkFlagRequired("branch")
	rootCmd.AddCommand(monthsCmd)
}

func runMonths(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	branch, err := s.reporter.ResolveBranch(cmd.Context(), monthsBranch)
	if err != nil {
		return err
	}

	months, err := s.reporter.AvailableMonths(cmd.Context(), branch.TaxID)
	if err != nil {
		return err
	}

	if len(months.Months) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n  Nenhuma venda de %s em %d.\n", branch.Name, months.Year)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderMonths(months))
	return nil
}
