package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
)

type subBuilderRef struct {
	solution *DefaultSolution
	builder  *defaultBuilder
}

// defaultBuilder drives one build's three-pass plan, grounded on
// CBuild::PreBuild/Build/PostBuild.
type defaultBuilder struct {
	solution  *DefaultSolution
	spec      *domain.BuildSpec
	buildName string
	force     bool

	subBuilders []subBuilderRef

	objects   []string
	needsLink bool
}

// PreBuild creates the build/tmp directories, recurses into sub-solutions,
// and synchronously runs the "pre" hook if set.
func (b *defaultBuilder) PreBuild() error {
	if err := os.MkdirAll(b.solution.cfg.BuildDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(b.solution.cfg.TmpDir, 0o755); err != nil {
		return err
	}

	for _, sub := range b.subBuilders {
		if err := sub.builder.PreBuild(); err != nil {
			return err
		}
	}

	if b.spec.Pre != "" {
		b.solution.loader.Term.ExecSystem(b.spec.Pre)
	}
	return nil
}

// Build queues compile tasks for every out-of-date source and returns the
// total number of tasks emitted by this build and its sub-builds.
func (b *defaultBuilder) Build(tasks ports.TaskList) (int, error) {
	emitted := 0

	for _, sub := range b.subBuilders {
		n, err := sub.builder.Build(tasks)
		if err != nil {
			return emitted, err
		}
		emitted += n
	}
	if emitted > 0 {
		b.needsLink = true
	}

	cmdPrefix := b.compileCommandPrefix()

	relPaths := make([]string, 0, len(b.solution.cfg.Sources))
	for relPath := range b.solution.cfg.Sources {
		relPaths = append(relPaths, relPath)
	}
	sort.Strings(relPaths)

	for _, relPath := range relPaths {
		source := b.solution.cfg.Sources[relPath]
		stem := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
		outPath := filepath.Join(b.solution.cfg.TmpDir, b.buildName+"_"+stem)

		// Appended for every source whether or not a task is emitted,
		// matching the original's unconditional m_objects push.
		b.objects = append(b.objects, outPath)

		currentMtime := source.Mtime.Unix()
		if recorded, ok := b.solution.diff.Get(b.buildName, relPath); ok && recorded >= currentMtime {
			continue
		}

		b.needsLink = true
		emitted++
		b.solution.diff.Set(b.buildName, relPath, currentMtime)

		sourcePath := filepath.Join(b.solution.dir, relPath)
		cmd := fmt.Sprintf(`%s -c "%s" -o "%s"`, cmdPrefix, sourcePath, outPath)

		title := stem
		if len(title) > domain.MaxWorkerTitle {
			title = title[:domain.MaxWorkerTitle]
		}
		tasks.AddCommand(title, cmd, true)
	}

	return emitted, nil
}

// PostBuild recurses into sub-solutions, persists their differential
// records, and runs the link/archive and "post" steps if this build (or a
// sub-build) needed relinking.
func (b *defaultBuilder) PostBuild() error {
	for _, sub := range b.subBuilders {
		if err := sub.builder.PostBuild(); err != nil {
			return err
		}
		if !b.force {
			_ = sub.solution.SaveDiff(filepath.Join(sub.solution.dir, "deltamake.json"))
		}
	}

	if !b.needsLink {
		b.solution.loader.Logger.Detail("nothing to link for build " + b.buildName)
		return nil
	}

	switch b.spec.Type {
	case "lib":
		b.archive()
	default:
		b.link()
	}

	if b.spec.Post != "" {
		b.solution.loader.Term.ExecSystem(b.spec.Post)
	}
	return nil
}

func (b *defaultBuilder) compileCommandPrefix() string {
	var sb strings.Builder
	sb.WriteString(b.spec.Compiler)
	if b.spec.CompilerFlags != "" {
		sb.WriteString(" ")
		sb.WriteString(b.spec.CompilerFlags)
	}
	for _, p := range b.spec.Include {
		fmt.Fprintf(&sb, ` -I"%s"`, p)
	}
	for _, p := range b.spec.LibPaths {
		fmt.Fprintf(&sb, ` -L"%s"`, p)
	}
	for _, d := range b.spec.Defines {
		fmt.Fprintf(&sb, ` -D"%s"`, d)
	}
	return sb.String()
}

func (b *defaultBuilder) link() {
	var sb strings.Builder
	sb.WriteString(b.spec.Linker)
	if b.spec.LinkerFlags != "" {
		sb.WriteString(" ")
		sb.WriteString(b.spec.LinkerFlags)
	}
	for _, obj := range b.objects {
		fmt.Fprintf(&sb, ` "%s"`, obj)
	}
	for _, lib := range b.spec.StaticLibs {
		fmt.Fprintf(&sb, ` "%s"`, lib)
	}
	outPath := filepath.Join(b.solution.cfg.BuildDir, b.spec.OutName)
	fmt.Fprintf(&sb, ` -o "%s"`, outPath)

	b.solution.loader.Term.ExecSystem(sb.String())
}

func (b *defaultBuilder) archive() {
	outPath := filepath.Join(b.solution.cfg.BuildDir, b.spec.OutName)
	var sb strings.Builder
	fmt.Fprintf(&sb, `%s rcs "%s"`, b.spec.Archiver, outPath)
	for _, obj := range b.objects {
		fmt.Fprintf(&sb, ` "%s"`, obj)
	}
	b.solution.loader.Term.ExecSystem(sb.String())
}

var _ ports.Builder = (*defaultBuilder)(nil)
