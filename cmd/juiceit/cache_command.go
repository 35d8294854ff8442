package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"juiceit/internal/scancache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the scan cache in the output directory",
	}

	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cached volume name and title count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(cmd, ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rec, ok := cache.Load()
			if !ok {
				fmt.Fprintf(out, "No scan cache at %s\n", cache.Path())
				return nil
			}
			label := rec.VolumeName
			if label == "" {
				label = "(empty)"
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Volume", "Titles", "Path"},
				[][]string{{label, fmt.Sprintf("%d", rec.NumTitles), cache.Path()}},
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the scan cache so the next run rescans the disc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(cmd, ctx)
			if err != nil {
				return err
			}
			if err := cache.Invalidate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared scan cache at %s\n", cache.Path())
			return nil
		},
	}
}

func openCache(cmd *cobra.Command, ctx *commandContext) (*scancache.Cache, error) {
	cfg, err := ctx.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg, "")
	if err != nil {
		return nil, err
	}
	return scancache.New(cfg.CachePath(), logger), nil
}
