package shell_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/deltamake/internal/adapters/shell"
)

func TestRunnerCapturesStdoutAndStderrIndependently(t *testing.T) {
	r := shell.NewRunner()

	result, err := r.Run("echo out-line; echo err-line 1>&2")
	require.NoError(t, err)
	require.True(t, result.Exited)
	require.Equal(t, 0, result.ExitStatus)
	require.Equal(t, "out-line\n", string(result.Stdout))
	require.Equal(t, "err-line\n", string(result.Stderr))
}

func TestRunnerReportsNonZeroExit(t *testing.T) {
	r := shell.NewRunner()

	result, err := r.Run("exit 42")
	require.NoError(t, err)
	require.True(t, result.Exited)
	require.Equal(t, 42, result.ExitStatus)
}

func TestRunnerExpandsEnvironmentThroughShell(t *testing.T) {
	r := shell.NewRunner()

	result, err := r.Run("X=hello; echo $X")
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(result.Stdout))
}

func TestRunnerKillTerminatesLongRunningCommand(t *testing.T) {
	r := shell.NewRunner()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Run("sleep 30")
	}()

	time.Sleep(100 * time.Millisecond)
	r.Kill()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Kill")
	}
}

func TestRunnerFragmentedOutputIsFullyCaptured(t *testing.T) {
	r := shell.NewRunner()

	result, err := r.Run("printf part1; sleep 0.05; printf part2")
	require.NoError(t, err)
	require.True(t, strings.Contains(string(result.Stdout), "part1part2"))
}
