package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/model"
)

var showCmd = &cobra.Command{
	Use:     "show <kind> <id>",
	Short:   "Show a record",
	GroupID: "records",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return err
		}
		rec, err := rosterClient.GetRecord(cmd.Context(), kind, args[1])
		if err != nil {
			return fmt.Errorf("getting %s %s: %w", kind, args[1], err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		return printRecord(cmd.OutOrStdout(), rec)
	},
}
