package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:       "verify <lawyer-id> approve|reject",
	Short:     "Approve or reject a pending lawyer",
	GroupID:   "records",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"approve", "reject"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, action := args[0], args[1]
		if action != "approve" && action != "reject" {
			return fmt.Errorf("action must be approve or reject, got %q", action)
		}
		lawyer, err := rosterClient.VerifyLawyer(cmd.Context(), id, action)
		if err != nil {
			return fmt.Errorf("verifying lawyer %s: %w", id, err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"action": action, "lawyer": lawyer})
		}
		name := ""
		if lawyer != nil {
			name = lawyer.String("name")
		}
		verb := "approved"
		if action == "reject" {
			verb = "rejected"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, id, name)
		return nil
	},
}
