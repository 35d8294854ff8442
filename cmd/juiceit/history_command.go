package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"juiceit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List titles ripped into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolveConfig(cmd)
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d history entries\n", removed)
				return nil
			}

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No titles ripped yet")
				return nil
			}
			const stampLayout = "2006-01-02 15:04"
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				label := entry.VolumeName
				if label == "" {
					label = "(unknown)"
				}
				rows = append(rows, []string{
					entry.RippedAt.Local().Format(stampLayout),
					label,
					fmt.Sprintf("%d", entry.Title),
					entry.OutputPath,
					humanBytes(entry.SizeBytes),
					formatElapsed(entry.Elapsed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Ripped", "Volume", "Title", "File", "Size", "Elapsed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete every history entry")
	return cmd
}
