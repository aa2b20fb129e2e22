package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/model"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <kind> <id>...",
	Short:   "Delete records",
	GroupID: "records",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return err
		}
		for _, id := range args[1:] {
			if err := rosterClient.DeleteRecord(cmd.Context(), kind, id); err != nil {
				return fmt.Errorf("deleting %s %s: %w", kind, id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", kind, id)
		}
		return nil
	},
}
