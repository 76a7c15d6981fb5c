package config

import (
	"path/filepath"
	"time"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/zerr"
)

// parseSolutionConfig builds a domain.SolutionConfig from a decoded
// solution document, grounded on CSolutionDefault's constructor: required
// paths.scan/paths.build/paths.tmp/files/builds, optional solutions map,
// non-existent files warned and skipped rather than fatal.
func parseSolutionConfig(doc domain.Value, dir string, mtime func(path string) (time.Time, error), warn func(msg string), detail func(msg string)) (*domain.SolutionConfig, error) {
	paths, ok := doc.Field("paths")
	if !ok || !paths.IsObject() {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigValueNotSet, "missing field"), "field", "paths")
	}

	scanRoots := paths.StringListField("scan")
	if len(scanRoots) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigValueNotSet, "missing field"), "field", "paths.scan")
	}

	buildDir, err := paths.StringField("build")
	if err != nil {
		return nil, zerr.With(err, "field", "paths.build")
	}
	tmpDir, err := paths.StringField("tmp")
	if err != nil {
		return nil, zerr.With(err, "field", "paths.tmp")
	}
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(dir, buildDir)
	}
	if !filepath.IsAbs(tmpDir) {
		tmpDir = filepath.Join(dir, tmpDir)
	}

	subSolutions := map[string]string{}
	if sol, ok := doc.Field("solutions"); ok {
		obj, _ := sol.AsObject()
		for codename, v := range obj {
			if s, ok := v.AsString(); ok {
				subSolutions[codename] = s
			}
		}
	}

	filesField, ok := doc.Field("files")
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigValueNotSet, "missing field"), "field", "files")
	}
	fileList, _ := filesField.AsArray()

	sources := make(map[string]domain.SourceEntry, len(fileList))
	for _, f := range fileList {
		relPath, ok := f.AsString()
		if !ok {
			continue
		}
		t, err := mtime(filepath.Join(dir, relPath))
		if err != nil {
			warn("source file does not exist, skipping: " + relPath)
			continue
		}
		sources[relPath] = domain.SourceEntry{Path: relPath, Mtime: t}
	}

	buildsField, ok := doc.Field("builds")
	if !ok || !buildsField.IsObject() {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigValueNotSet, "missing field"), "field", "builds")
	}
	buildsObj, _ := buildsField.AsObject()
	builds := make(map[string]*domain.BuildSpec, len(buildsObj))
	for name, v := range buildsObj {
		spec, err := parseBuildSpec(name, v, detail)
		if err != nil {
			return nil, err
		}
		builds[name] = spec
	}

	return &domain.SolutionConfig{
		Dir:          dir,
		ScanRoots:    scanRoots,
		BuildDir:     buildDir,
		TmpDir:       tmpDir,
		SubSolutions: subSolutions,
		Sources:      sources,
		Builds:       builds,
	}, nil
}

// parseBuildSpec decodes one entry of the "builds" map, applying the
// defaults §3 of the documented data model specifies.
func parseBuildSpec(name string, v domain.Value, detail func(msg string)) (*domain.BuildSpec, error) {
	spec := &domain.BuildSpec{
		Name:     name,
		Type:     "exec",
		OutName:  "out",
		Compiler: "g++",
		Linker:   "g++",
		Archiver: "ar",
	}

	if t := v.OptionalStringField("type"); t != "" {
		switch t {
		case "exec", "lib":
			spec.Type = t
		default:
			detail("build " + name + ": unrecognized type " + t + ", falling back to exec")
		}
	}
	if o := v.OptionalStringField("outname"); o != "" {
		spec.OutName = o
	}
	if c := v.OptionalStringField("compiler"); c != "" {
		spec.Compiler = c
	}
	spec.CompilerFlags = v.OptionalStringField("compilerFlags")
	if l := v.OptionalStringField("linker"); l != "" {
		spec.Linker = l
	}
	spec.LinkerFlags = v.OptionalStringField("linkerFlags")
	if a := v.OptionalStringField("archiver"); a != "" {
		spec.Archiver = a
	}
	spec.Pre = v.OptionalStringField("pre")
	spec.Post = v.OptionalStringField("post")

	if paths, ok := v.Field("paths"); ok {
		spec.Include = paths.StringListField("include")
		spec.LibPaths = paths.StringListField("lib")
	}
	spec.Defines = v.StringListField("defines")
	spec.StaticLibs = v.StringListField("staticLibs")

	spec.Solutions = map[string]domain.BuildSpecSolution{}
	if sol, ok := v.Field("solutions"); ok {
		obj, _ := sol.AsObject()
		for codename, entry := range obj {
			build := entry.OptionalStringField("build")
			if build == "" {
				build = "default"
			}
			spec.Solutions[codename] = domain.BuildSpecSolution{Build: build}
		}
	}

	return spec, nil
}
