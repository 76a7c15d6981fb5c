package domain

import "time"

// SourceEntry is one file tracked by a solution, along with the modification
// time observed when the solution document was loaded.
type SourceEntry struct {
	Path  string
	Mtime time.Time
}

// SubSolutionRef names a nested solution directory reachable from its parent
// under a short codename. BuildSpec.Solutions keys its entries by codename
// directly and does not use this type.
type SubSolutionRef struct {
	Codename string
}

// BuildSpecSolution is one entry of a BuildSpec's "solutions" map: which
// build of a referenced sub-solution to generate and inherit.
type BuildSpecSolution struct {
	Build string
}

// BuildSpec is one named entry of a solution's "builds" map: the compiler,
// linker and archiver invocation template for a single build target.
type BuildSpec struct {
	Name string

	// Type selects the link step: "exec" (default) produces an
	// executable, "lib" produces a static archive.
	Type    string
	OutName string

	Compiler      string
	CompilerFlags string
	Linker        string
	LinkerFlags   string
	Archiver      string

	Include     []string
	LibPaths    []string
	Defines     []string
	StaticLibs  []string

	Pre  string
	Post string

	// Solutions maps a sub-solution codename (resolved through the
	// owning SolutionConfig's SubSolutions) to the build it should run.
	Solutions map[string]BuildSpecSolution
}

// SolutionConfig is the parsed, in-memory form of a solution document.
type SolutionConfig struct {
	// Dir is the directory the document was loaded from; relative paths
	// within the document (build/tmp/scan/sub-solution dirs) are resolved
	// against it.
	Dir string

	ScanRoots []string
	BuildDir  string
	TmpDir    string

	// SubSolutions maps a codename to the directory (relative to Dir)
	// containing another solution document.
	SubSolutions map[string]string

	// Sources is keyed by each file's path relative to Dir.
	Sources map[string]SourceEntry

	Builds map[string]*BuildSpec
}
