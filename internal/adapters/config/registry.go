package config

import (
	"sync"

	"go.trai.ch/deltamake/internal/core/ports"
)

var (
	registryMu sync.Mutex
	registry   = make(map[string]ports.SolutionFactory)
)

// RegisterSolutionFactory registers a solution type factory under its
// reported name, making it reachable from a document's "type" field. Called
// from a factory package's init(), mirroring the original's plugin
// registration. A document with no "type" (or "type": "default") uses the
// generic default solution; any other "type" with no registered factory is
// rejected with domain.ErrSolutionTypeUnknown.
func RegisterSolutionFactory(factory ports.SolutionFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[factory.Name()] = factory
}

func lookupSolutionFactory(name string) (ports.SolutionFactory, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	f, ok := registry[name]
	return f, ok
}
