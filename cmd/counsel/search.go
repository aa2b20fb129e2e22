package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/client"
	"github.com/alfredjeanlab/counsel/internal/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <kind> [key=value...]",
	Short: "Search records of a kind by field criteria",
	Long: `Search records of one kind. Each key=value criterion must hold:
text fields match by substring, category fields exactly ("all" matches
anything), numeric fields by range bucket such as "5-10" or "15+".
The "search" key matches free text across a kind's search fields.`,
	Example: `  counsel search lawyer location=delhi experience=5-10
  counsel search lawyer --field specialization="family law" -q Gupta
  counsel search case status=active --json`,
	GroupID: "records",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return err
		}
		pairs, _ := cmd.Flags().GetStringArray("field")
		criteria, err := model.ParseCriteriaPairs(slices.Concat(args[1:], pairs))
		if err != nil {
			return err
		}
		if q, _ := cmd.Flags().GetString("query"); q != "" {
			criteria = criteria.With(model.CriterionSearch, q)
		}
		if s, _ := cmd.Flags().GetString("sort"); s != "" {
			criteria = criteria.With(model.CriterionSort, s)
		}
		if criteria, err = canonicalRanges(kind, criteria); err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := rosterClient.Search(cmd.Context(), &client.SearchRequest{
			Kind:     kind,
			Criteria: criteria,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return fmt.Errorf("searching %s records: %w", kind, err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		return printRecordTable(cmd.OutOrStdout(), kind, resp.Records, resp.Total)
	},
}

func init() {
	searchCmd.Flags().StringArrayP("field", "f", nil, "criterion as key=value (repeatable)")
	searchCmd.Flags().StringP("query", "q", "", "free-text search")
	searchCmd.Flags().String("sort", "", `re-order results ("id")`)
	searchCmd.Flags().Int("limit", 20, "maximum number of results (0 = all)")
	searchCmd.Flags().Int("offset", 0, "number of matches to skip")
}
