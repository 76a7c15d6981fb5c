package ports

import "go.trai.ch/deltamake/internal/core/domain"

// Solution is a loaded, buildable solution document. A default
// implementation handles documents with no "type" field or "type": "default";
// additional types register through SolutionFactory.
type Solution interface {
	// GenBuild resolves a named build into a Builder, or returns
	// (nil, domain.ErrBuildNotFound) if the name has no entry. When force
	// is true, sub-solutions referenced by this build skip loading their
	// existing differential record (a full rebuild is being forced).
	GenBuild(name string, force bool) (Builder, error)

	// LoadDiff loads a persisted differential record from path. A missing
	// file is not an error: it leaves the solution with an empty record.
	LoadDiff(path string) error

	// SaveDiff persists the solution's differential record to path.
	SaveDiff(path string) error

	// Config exposes the solution's parsed document for sub-solution wiring.
	Config() *domain.SolutionConfig
}

// Builder drives one build's three-pass plan: PreBuild runs setup and the
// "pre" hook, Build queues compile tasks onto a TaskList, PostBuild runs the
// link/archive step and the "post" hook.
type Builder interface {
	PreBuild() error
	Build(tasks TaskList) (int, error)
	PostBuild() error
}

// TaskList is the write side of a scheduler's task queue: Build Planner
// steps append to it, they never read it back.
type TaskList interface {
	AddCommand(title, command string, failIfNonZero bool)
	AddBarrier()
	TaskCount() int
}

// SolutionFactory constructs a Solution from a parsed document for
// documents that name a specific "type". The config loader accepts a
// factory's Solution only when it is the loader's own default solution type;
// a factory returning any other Solution type makes the load fail.
type SolutionFactory interface {
	Name() string
	New(doc domain.Value, dir string) (Solution, error)
}

// SolutionLoader reads a solution document from disk and returns the
// loaded Solution, dispatching through any registered SolutionFactory.
type SolutionLoader interface {
	Load(path string) (Solution, error)
}
