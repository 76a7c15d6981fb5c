package app

import (
	"context"

	"go.trai.ch/deltamake/internal/core/ports"
)

// Runner is the operation the CLI layer drives on the App, letting tests
// substitute a fake in place of the fully wired *App.
type Runner interface {
	Run(ctx context.Context, dir string, buildNames []string, opts RunOptions) error
}

// Components bundles the fully-wired application alongside the pieces the
// CLI layer still needs direct access to, namely the Logger and Terminal
// singletons whose verbosity a --verbose flag toggles after Graft resolution.
type Components struct {
	App      Runner
	Logger   ports.Logger
	Terminal ports.Terminal
}

// NewComponents assembles Components from already-constructed dependencies.
func NewComponents(app *App, logger ports.Logger, term ports.Terminal) *Components {
	return &Components{App: app, Logger: logger, Terminal: term}
}

// NewApp resolves the full dependency graph through Graft and returns the
// ready-to-run Components.
func NewApp() (*Components, error) {
	return bootstrap()
}
