package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/templates"
)

func initCmd(opts *globalOptions) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a routegen project",
		Long: `Create a routegen configuration, a route tree and example pages and
state modules in the project directory. Existing files are never
overwritten.

Templates:
  ` + strings.Join(templates.List(), ", ") + `

Examples:
  routegen init
  routegen init --template=yaml -C ./web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, template)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "json", "Scaffold template ("+strings.Join(templates.List(), ", ")+")")

	return cmd
}

func runInit(cmd *cobra.Command, opts *globalOptions, templateName string) error {
	dir := opts.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := tmpl.Create(dir, templates.Config{ProjectName: filepath.Base(dir)}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	success(out, "Initialized routegen project from the %q template", templateName)
	for _, p := range tmpl.Paths() {
		info(out, "%s", p)
	}
	info(out, "")
	info(out, "Next: %s", dim("routegen gen"))
	return nil
}
