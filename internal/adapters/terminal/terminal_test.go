package terminal_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/deltamake/internal/adapters/terminal"
	"go.trai.ch/deltamake/internal/core/ports"
)

func TestModTimeReflectsFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	want := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, want, want))

	term := terminal.New(false)
	got, err := term.ModTime(path)
	require.NoError(t, err)
	require.WithinDuration(t, want, got, time.Second)
}

func TestModTimeMissingFile(t *testing.T) {
	term := terminal.New(false)
	_, err := term.ModTime(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestColumnsFallsBackWhenNotATTY(t *testing.T) {
	term := terminal.New(false)
	require.Greater(t, term.Columns(), 0)
	require.Greater(t, term.Rows(), 0)
}

func TestSetVerboseTogglesDetailLogging(t *testing.T) {
	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = originalStdout }()

	term := terminal.New(false)
	term.Log(ports.LogDetail, "hidden\n")
	term.SetVerbose(true)
	term.Log(ports.LogDetail, "shown\n")

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	os.Stdout = originalStdout

	require.NotContains(t, string(out), "hidden")
	require.Contains(t, string(out), "shown")
}
