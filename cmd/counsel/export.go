package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/config"
	rostersync "github.com/alfredjeanlab/counsel/internal/sync"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSONL snapshot of the roster",
	Long: `Export every record from the configured store as JSONL: one header
line, then one line per record. Reads COUNSEL_DATABASE_URL like serve does.`,
	GroupID:           "system",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		var out io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" && path != "-" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		bw := bufio.NewWriter(out)
		if err := rostersync.ExportJSONL(cmd.Context(), st, bw); err != nil {
			return fmt.Errorf("exporting roster: %w", err)
		}
		return bw.Flush()
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", `file to write ("-" or empty for stdout)`)
}
