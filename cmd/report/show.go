package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/internal/cli"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var (
	showBranch string
	showMonth  string
	showJSON   bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Mostra o relatório de vendas x meta de uma filial",
	Example: "  report show --branch Centro --month 3\n" +
		"  report show --branch 12345678000199 --month 3 --json",
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showBranch, "branch", "b", "", "Nome ou CNPJ da filial")
	showCmd.Flags().StringVarP(&showMonth, "month", "m", "", "Mês de referência (1-12)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Saída em JSON")
	_ = showCmd.MarkFlagRequired("branch")
	_ = showCmd.MarkFlagRequired("month")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	month, err := utils.ParseMonth(showMonth)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	branch, err := s.reporter.ResolveBranch(cmd.Context(), showBranch)
	if err != nil {
		return err
	}

	report, err := s.reporter.GetBranchReport(cmd.Context(), branch.TaxID, month)
	if err != nil {
		return err
	}

	if showJSON {
		fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(report))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderReport(report))
	return nil
}
