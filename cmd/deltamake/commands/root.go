// Package commands implements the deltamake CLI, translating cobra flags
// into the build-name positional args and RunOptions the original's
// CArgStream/ParseArgs produced from argv.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.trai.ch/deltamake/internal/app"
	"go.trai.ch/deltamake/internal/build"
)

// Application is the interface the root command drives, letting tests
// substitute a fake in place of the fully wired *app.App.
type Application interface {
	Run(ctx context.Context, dir string, buildNames []string, opts app.RunOptions) error
}

// Verbosity is the subset of the wired singletons whose verbosity a
// --verbose flag toggles before a run starts.
type Verbosity interface {
	SetVerbose(bool)
}

// CLI represents the deltamake command line interface.
type CLI struct {
	app       Application
	verbosity []Verbosity
	rootCmd   *cobra.Command
}

// New creates a CLI driving app, toggling every entry in verbosity when
// --verbose is passed.
func New(a Application, verbosity ...Verbosity) *CLI {
	rootCmd := &cobra.Command{
		Use:           "deltamake [flags] [build...]",
		Short:         "Incremental multi-project native build driver",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"deltamake version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show this help text"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print detail-level log messages")
	rootCmd.PersistentFlags().BoolP("no-build", "n", false, "Load and validate the solution but queue no tasks")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Ignore the differential record and rebuild everything")
	rootCmd.PersistentFlags().BoolP("dont-save-diff", "d", false, "Skip persisting the differential record after the run")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "Worker pool size (default: number of CPUs)")

	// Registered after --verbose so cobra sees -v taken and gives --version
	// no shorthand.
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	c := &CLI{
		app:       a,
		verbosity: verbosity,
		rootCmd:   rootCmd,
	}

	rootCmd.RunE = c.run
	rootCmd.AddCommand(c.newVersionCmd())

	// An unrecognized flag prints help and exits 0, matching ParseArgs'
	// CheckArg fallthrough instead of cobra's default "unknown flag" error.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Help()
		os.Exit(0)
		return nil
	})

	return c
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		for _, v := range c.verbosity {
			v.SetVerbose(true)
		}
	}

	noBuild, _ := cmd.Flags().GetBool("no-build")
	force, _ := cmd.Flags().GetBool("force")
	dontSaveDiff, _ := cmd.Flags().GetBool("dont-save-diff")
	workers, _ := cmd.Flags().GetInt("workers")
	if cmd.Flags().Changed("workers") && workers == 0 {
		// An explicit "-w 0" means "one worker", matching ParseArgs'
		// "if (nMaxWorkers==0) nMaxWorkers=1". Only an omitted flag falls
		// back to the core count, handled downstream.
		workers = 1
	}

	return c.app.Run(cmd.Context(), ".", args, app.RunOptions{
		Force:        force,
		NoBuild:      noBuild,
		DontSaveDiff: dontSaveDiff,
		Workers:      workers,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
