// Package app wires a loaded solution's build planner passes to the
// Scheduler, the Go equivalent of main.cpp's control flow from "load the
// solution document" through "save the differential record".
package app

import (
	"context"
	"path/filepath"
	"runtime"

	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/zerr"
)

const configFilename = "solution.json"
const diffFilename = "deltamake.json"

// RunOptions carries the CLI flags that steer a single invocation.
type RunOptions struct {
	// Force skips loading the existing differential record, forcing every
	// source to be treated as out of date.
	Force bool
	// NoBuild loads and validates the solution but queues no tasks.
	NoBuild bool
	// DontSaveDiff skips persisting the differential record after a run.
	DontSaveDiff bool
	// Workers caps the worker pool size; zero means runtime.NumCPU().
	Workers int
}

// App ties a solution loader to a Scheduler for a single build invocation.
type App struct {
	loader ports.SolutionLoader
	sched  ports.Scheduler
	logger ports.Logger
}

// New returns an App driving sched from solutions loader reads.
func New(loader ports.SolutionLoader, sched ports.Scheduler, logger ports.Logger) *App {
	return &App{loader: loader, sched: sched, logger: logger}
}

// Run loads the solution document in dir, plans every named build, and
// drives them through the Scheduler to completion.
func (a *App) Run(ctx context.Context, dir string, buildNames []string, opts RunOptions) error {
	solution, err := a.loader.Load(filepath.Join(dir, configFilename))
	if err != nil {
		return zerr.Wrap(err, "load solution")
	}

	if opts.NoBuild {
		return nil
	}

	diffPath := filepath.Join(dir, diffFilename)
	if !opts.Force {
		if err := solution.LoadDiff(diffPath); err != nil {
			return zerr.Wrap(err, "load differential record")
		}
	}

	if len(buildNames) == 0 {
		buildNames = []string{"default"}
	}

	builders := make([]ports.Builder, len(buildNames))
	for i, name := range buildNames {
		builder, err := solution.GenBuild(name, opts.Force)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "resolve build"), "build", name)
		}
		builders[i] = builder
	}

	taskList := a.sched.GetList()
	for _, builder := range builders {
		if err := builder.PreBuild(); err != nil {
			return zerr.Wrap(err, "pre-build")
		}
		if _, err := builder.Build(taskList); err != nil {
			return zerr.Wrap(err, "plan build")
		}
	}

	if taskList.TaskCount() == 0 {
		a.logger.Info("nothing to do")
		return nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	a.sched.Init(workers)

	if err := a.sched.Start(ctx); err != nil {
		return zerr.Wrap(err, "build run")
	}

	for _, builder := range builders {
		if err := builder.PostBuild(); err != nil {
			return zerr.Wrap(err, "post-build")
		}
	}

	if !opts.DontSaveDiff {
		if err := solution.SaveDiff(diffPath); err != nil {
			return zerr.Wrap(err, "save differential record")
		}
	}

	a.logger.Info("done")
	return nil
}
