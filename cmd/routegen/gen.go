package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/generate"
)

func genCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Generate the route manifest and router bootstrap",
		Long: `Read the route tree, discover state modules, and write
route-config.js and router.js to the output directory.

The output directory is deleted and recreated on every run. The output
is deterministic: running it twice on an unchanged project produces
identical files.

Examples:
  routegen gen
  routegen gen -C ./web
  routegen gen --log-level=debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, opts)
		},
	}
}

func runGen(cmd *cobra.Command, opts *globalOptions) error {
	cfg, log, err := loadProject(cmd, opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	result, err := generate.New(cfg, generate.Options{Logger: log}).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, w := range result.Warnings {
		warn(out, "%s %s", w.Message, dim("("+w.Node+")"))
	}
	success(out, "Generated %d routes in %s", result.Routes, result.Duration.Round(time.Microsecond))
	for _, f := range result.Files {
		if rel, err := filepath.Rel(cfg.Root(), f); err == nil {
			f = rel
		}
		info(out, "%s", f)
	}
	info(out, "%d route state modules, %d global", result.ModuleRefs, result.Globals)
	return nil
}
