package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigValueNotSet is returned when a required field is missing from a solution document.
	ErrConfigValueNotSet = zerr.New("config value not set")

	// ErrFileNotExists is returned when a referenced file cannot be opened.
	ErrFileNotExists = zerr.New("file does not exist")

	// ErrBuildNotFound is returned when a requested build name has no entry in a solution's builds map.
	ErrBuildNotFound = zerr.New("build not found")

	// ErrSolutionTypeUnknown is returned when a solution document names a type with no registered factory.
	ErrSolutionTypeUnknown = zerr.New("unknown solution type")

	// ErrSubSolutionNotFound is returned when a build references a sub-solution codename absent from its parent.
	ErrSubSolutionNotFound = zerr.New("sub-solution not found")

	// ErrNotRunning reports that the scheduler has no active run. No
	// scheduler operation returns it.
	ErrNotRunning = zerr.New("scheduler not running")

	// ErrAlreadyRunning is returned by Start when a run is already in progress.
	ErrAlreadyRunning = zerr.New("scheduler already running")

	// ErrNoWorkers is returned when a scheduler is started with zero worker slots.
	ErrNoWorkers = zerr.New("no worker slots configured")

	// ErrTaskFailed is returned by a scheduler run in which at least one
	// worker's task reported failure.
	ErrTaskFailed = zerr.New("task failed")
)
