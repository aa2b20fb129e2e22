package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/model"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <role> [key=value...]",
	Short: "Show a role's dashboard tab",
	Long: `Show the panels of a dashboard tab for customer, lawyer or admin.
Criteria narrow every panel; they never widen a panel's own filter.`,
	Example: `  counsel dashboard admin --tab pending
  counsel dashboard customer location=delhi experience=5-10`,
	GroupID:   "views",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{"customer", "lawyer", "admin"},
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := model.ParseCriteriaPairs(args[1:])
		if err != nil {
			return err
		}
		tab, _ := cmd.Flags().GetString("tab")

		d, err := rosterClient.Dashboard(cmd.Context(), args[0], tab, criteria)
		if err != nil {
			return fmt.Errorf("loading %s dashboard: %w", args[0], err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), d)
		}
		return printDashboard(cmd.OutOrStdout(), d)
	},
}

var schemaCmd = &cobra.Command{
	Use:     "schema <kind>",
	Short:   "Show the fields of a record kind",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return err
		}
		s, err := rosterClient.Schema(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("getting %s schema: %w", kind, err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), s)
		}
		return printSchema(cmd.OutOrStdout(), s)
	},
}

func init() {
	dashboardCmd.Flags().String("tab", "", "tab to show (default: the role's first tab)")
}
