package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	return buildRootCommand(&commandContext{})
}

func buildRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "juiceit",
		Short:         "Rip every title on a DVD with HandBrakeCLI",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRip(cmd, ctx)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		return err
	})

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&ctx.configFlag, "config", "", "Configuration file path")
	persistent.StringVar(&ctx.flags.output, "output", "", "Output directory for ripped titles (default current directory)")
	persistent.StringVar(&ctx.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	persistent.StringVar(&ctx.flags.logFormat, "log-format", "", "Log format: console or json")

	flags := rootCmd.Flags()
	flags.StringVar(&ctx.flags.dvdSource, "dvdSource", "", "DVD device path (default auto-detect)")
	flags.StringVar(&ctx.flags.quality, "quality", "", "Constant quality level passed to HandBrakeCLI (default \"20\")")
	flags.StringVar(&ctx.flags.encoder, "encoder", "", "Video encoder (default \"x264\")")
	flags.BoolVar(&ctx.flags.noDeinterlace, "no-deinterlace", false, "Disable deinterlacing")
	flags.IntVar(&ctx.flags.subtitles, "subtitles", 0, "Subtitle track index (default 1)")
	flags.StringVar(&ctx.flags.subLang, "sub-lang", "", "Subtitle language code (default \"eng\")")
	flags.BoolVar(&ctx.flags.eject, "eject", false, "Eject the disc after every title is ripped")
	flags.BoolVar(&ctx.flags.wait, "wait", false, "Wait for a disc to be inserted instead of failing (Linux)")

	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
