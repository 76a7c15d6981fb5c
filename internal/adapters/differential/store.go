// Package differential persists a solution's build->source->mtime record to
// a flat JSON file, the Go equivalent of the original's
// CSolutionDefault::LoadDiff/SaveDiff pair.
package differential

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/zerr"
)

// document is the on-disk shape: {"version": "...", "diff": {build: {path: mtime}}}.
type document struct {
	Version string                       `json:"version"`
	Diff    map[string]map[string]int64 `json:"diff"`
}

// Store implements ports.DifferentialStore using a JSON file on disk.
type Store struct{}

// NewStore returns a Store. It holds no state: callers own the
// domain.DifferentialRecord and pass it to Load/Save explicitly, so the
// same Store can serve every solution in a sub-solution tree.
func NewStore() *Store {
	return &Store{}
}

// Load reads a differential record from path. A missing file is not an
// error — it returns a fresh, empty record, matching LoadDiff's
// "ignore and continue" behavior for a first build.
func (s *Store) Load(path string) (*domain.DifferentialRecord, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDifferentialRecord(), nil
		}
		return nil, zerr.Wrap(err, "read differential record")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, "parse differential record")
	}
	if doc.Version == "" {
		return nil, zerr.With(zerr.New("differential record missing version"), "path", path)
	}

	record := domain.NewDifferentialRecord()
	record.LoadSnapshot(doc.Version, doc.Diff)
	return record, nil
}

// Save writes a differential record to path, pretty-printed the way the
// original's Json::StyledWriter renders it.
func (s *Store) Save(path string, record *domain.DifferentialRecord) error {
	doc := document{
		Version: record.Version,
		Diff:    record.Snapshot(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "marshal differential record")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.Wrap(err, "create directory for differential record")
		}
	}

	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return zerr.Wrap(err, "write differential record")
	}
	return nil
}

var _ ports.DifferentialStore = (*Store)(nil)
