// Package config loads solution.json documents into buildable Solutions,
// the Go equivalent of ISolution::Load's factory dispatch and
// CSolutionDefault's document parsing.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader reads solution.json documents from disk, dispatching through the
// registered SolutionFactory set. A factory's Solution is accepted only when
// it is a *DefaultSolution; any other Solution type makes the load fail.
type Loader struct {
	Term      ports.Terminal
	Logger    ports.Logger
	DiffStore ports.DifferentialStore
}

// NewLoader returns a Loader bound to its terminal/logger/differential-store collaborators.
func NewLoader(term ports.Terminal, logger ports.Logger, diffStore ports.DifferentialStore) *Loader {
	return &Loader{Term: term, Logger: logger, DiffStore: diffStore}
}

// Load reads the solution document at path and returns the loaded Solution.
func (l *Loader) Load(path string) (ports.Solution, error) {
	return l.load(path)
}

func (l *Loader) load(path string) (*DefaultSolution, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(zerr.Wrap(domain.ErrFileNotExists, "open solution document"), "path", path)
		}
		return nil, zerr.Wrap(err, "read solution document")
	}

	doc, err := domain.ParseValue(data)
	if err != nil {
		return nil, err
	}

	if _, err := doc.StringField("version"); err != nil {
		return nil, zerr.With(err, "field", "version")
	}

	dir := filepath.Dir(path)

	typeName := doc.OptionalStringField("type")
	if typeName != "" && typeName != "default" {
		factory, ok := lookupSolutionFactory(typeName)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrSolutionTypeUnknown, "unknown solution type"), "type", typeName)
		}
		solution, err := factory.New(doc, dir)
		if err != nil {
			return nil, err
		}
		if ds, ok := solution.(*DefaultSolution); ok {
			return ds, nil
		}
		return nil, zerr.With(zerr.New("registered solution factory did not return an adaptable solution"), "type", typeName)
	}

	return newDefaultSolution(doc, dir, l)
}

var _ ports.SolutionLoader = (*Loader)(nil)
