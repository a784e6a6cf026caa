package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/routegen/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	dir      string
	logLevel string
	logJSON  bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "routegen",
		Short: "Generate lazily-loaded route configs for dva applications",
		Long: `routegen turns a declarative route tree into a route manifest whose
components and state modules are loaded on demand, plus the router
bootstrap module that wires them into a dva application.

State modules are discovered by directory: a route sees every file
under a models/ directory next to its component or in any parent
directory up to src/. Files under src/models/ are registered globally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "C", "", "Project directory (default: nearest directory with a routegen config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(
		genCmd(opts),
		watchCmd(opts),
		initCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnStyle.Render("⚠"), fmt.Sprintf(format, args...))
}

// dim renders secondary text.
func dim(s string) string {
	return dimStyle.Render(s)
}
