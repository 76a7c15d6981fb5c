package differential_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/deltamake/internal/adapters/differential"
	"go.trai.ch/deltamake/internal/core/domain"
)

func TestLoadMissingFileReturnsEmptyRecord(t *testing.T) {
	s := differential.NewStore()
	record, err := s.Load(filepath.Join(t.TempDir(), "deltamake.json"))
	require.NoError(t, err)
	require.Empty(t, record.BuildNames())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s := differential.NewStore()
	path := filepath.Join(t.TempDir(), "deltamake.json")

	record := domain.NewDifferentialRecord()
	record.Set("default", "src/main.c", 1700000000)
	record.Set("default", "src/util.c", 1700000100)

	require.NoError(t, s.Save(path, record))

	loaded, err := s.Load(path)
	require.NoError(t, err)

	ts, ok := loaded.Get("default", "src/main.c")
	require.True(t, ok)
	require.EqualValues(t, 1700000000, ts)

	ts, ok = loaded.Get("default", "src/util.c")
	require.True(t, ok)
	require.EqualValues(t, 1700000100, ts)
}

func TestLoadRejectsDocumentWithoutVersion(t *testing.T) {
	s := differential.NewStore()
	path := filepath.Join(t.TempDir(), "deltamake.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"diff":{}}`), 0o644))

	_, err := s.Load(path)
	require.Error(t, err)
}
