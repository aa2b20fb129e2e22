package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/model"
)

var putCmd = &cobra.Command{
	Use:   "put <kind> [<id>] --field key=value...",
	Short: "Create or replace a record",
	Long: `Store a record. Without an id a new record is created under a generated
id; with one the record is created or replaced. Field values are typed by
the kind's schema, so experience=8 is stored as a number.`,
	Example: `  counsel put lawyer --field name="Adv. Kavya Rao" --field status=pending
  counsel put case cs-1 -f title="Property Dispute Case" -f status=review`,
	GroupID: "records",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return err
		}
		pairs, _ := cmd.Flags().GetStringArray("field")
		fields, err := parseFieldValues(kind, pairs)
		if err != nil {
			return err
		}

		var rec *model.Record
		if len(args) == 2 {
			rec, err = rosterClient.PutRecord(cmd.Context(), kind, args[1], fields)
		} else {
			rec, err = rosterClient.CreateRecord(cmd.Context(), kind, fields)
		}
		if err != nil {
			return fmt.Errorf("storing %s record: %w", kind, err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s %s\n", kind, rec.ID)
		return nil
	},
}

func init() {
	putCmd.Flags().StringArrayP("field", "f", nil, "field as key=value (repeatable)")
}
