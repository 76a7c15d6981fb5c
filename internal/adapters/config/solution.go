package config

import (
	"path/filepath"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultSolution is the generic solution handler: any document with no
// "type" field (or an explicit "type": "default") is loaded through it.
type DefaultSolution struct {
	dir    string
	cfg    *domain.SolutionConfig
	diff   *domain.DifferentialRecord
	loader *Loader
}

func newDefaultSolution(doc domain.Value, dir string, loader *Loader) (*DefaultSolution, error) {
	cfg, err := parseSolutionConfig(doc, dir, loader.Term.ModTime,
		func(msg string) { loader.Logger.Warn(msg) },
		func(msg string) { loader.Logger.Detail(msg) })
	if err != nil {
		return nil, err
	}
	return &DefaultSolution{
		dir:    dir,
		cfg:    cfg,
		diff:   domain.NewDifferentialRecord(),
		loader: loader,
	}, nil
}

// Config exposes the solution's parsed document.
func (s *DefaultSolution) Config() *domain.SolutionConfig { return s.cfg }

// LoadDiff loads a persisted differential record. A missing file is not an
// error, matching LoadDiff's "ignore and continue" behavior.
func (s *DefaultSolution) LoadDiff(path string) error {
	record, err := s.loader.DiffStore.Load(path)
	if err != nil {
		return err
	}
	s.diff = record
	return nil
}

// SaveDiff persists the solution's differential record.
func (s *DefaultSolution) SaveDiff(path string) error {
	return s.loader.DiffStore.Save(path, s.diff)
}

// GenBuild resolves a named build into a Builder, eagerly resolving and
// loading every sub-solution the build references, mirroring CBuild's
// constructor.
func (s *DefaultSolution) GenBuild(name string, force bool) (ports.Builder, error) {
	return s.genBuild(name, force)
}

func (s *DefaultSolution) genBuild(name string, force bool) (*defaultBuilder, error) {
	spec, ok := s.cfg.Builds[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrBuildNotFound, "build not found"), "build", name)
	}

	b := &defaultBuilder{
		solution:  s,
		spec:      spec,
		buildName: name,
		force:     force,
	}

	for codename, ref := range spec.Solutions {
		subDirName, ok := s.cfg.SubSolutions[codename]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrSubSolutionNotFound, "sub-solution not found"), "codename", codename)
		}

		subPath := filepath.Join(s.dir, subDirName, "solution.json")
		subSolution, err := s.loader.load(subPath)
		if err != nil {
			return nil, err
		}

		// Inherit this solution's output directories, matching the
		// original overriding the sub-solution's buildPath/tmpPath.
		subSolution.cfg.BuildDir = s.cfg.BuildDir
		subSolution.cfg.TmpDir = s.cfg.TmpDir

		subBuildName := ref.Build
		if subBuildName == "" {
			subBuildName = "default"
		}
		subBuilder, err := subSolution.genBuild(subBuildName, force)
		if err != nil {
			return nil, err
		}

		if !force {
			_ = subSolution.LoadDiff(filepath.Join(subSolution.dir, "deltamake.json"))
		}

		b.subBuilders = append(b.subBuilders, subBuilderRef{solution: subSolution, builder: subBuilder})
	}

	return b, nil
}

var _ ports.Solution = (*DefaultSolution)(nil)
