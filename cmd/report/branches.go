package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/internal/cli"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Lista as filiais presentes na tabela de vendas",
	RunE:  runBranches,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}

func runBranches(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	branches, err := s.reporter.ListBranches(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderBranches(branches))
	return nil
}
