// Package main is the entry point for the deltamake build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/deltamake/cmd/deltamake/commands"
	"go.trai.ch/deltamake/internal/app"
	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
	_ "go.trai.ch/deltamake/internal/wiring"
)

// loggerVerbosity and terminalVerbosity adapt the ports.Logger/ports.Terminal
// singletons Graft hands back into commands.Verbosity, since the ports
// interfaces themselves expose no SetVerbose (only their constructors take
// the flag). A singleton that isn't the concrete logger/terminal adapter is
// left untouched.
type loggerVerbosity struct{ l ports.Logger }

func (v loggerVerbosity) SetVerbose(verbose bool) {
	if s, ok := v.l.(interface{ SetVerbose(bool) }); ok {
		s.SetVerbose(verbose)
	}
}

type terminalVerbosity struct{ t ports.Terminal }

func (v terminalVerbosity) SetVerbose(verbose bool) {
	if s, ok := v.t.(interface{ SetVerbose(bool) }); ok {
		s.SetVerbose(verbose)
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, app.NewApp))
}

// ComponentProvider resolves the application's dependency graph into its
// ready-to-run Components, matching app.NewApp's signature so tests can
// substitute a fake provider.
type ComponentProvider func() (*app.Components, error)

// run does not itself register os.Interrupt: the Scheduler owns SIGINT
// handling internally (its two-stage Stop/Kill escalation), and a second
// registration here would race it for the same signal and defeat the
// escalation on a second Ctrl-C.
func run(ctx context.Context, args []string, stderr io.Writer, provider ComponentProvider) int {
	components, err := provider()
	if err != nil {
		// The Logger Graft may not have resolved; write directly to the
		// stderr handed in.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App, loggerVerbosity{components.Logger}, terminalVerbosity{components.Terminal})
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrTaskFailed) {
			return 1
		}
		components.Logger.Error(err.Error())
		return 1
	}
	return 0
}
