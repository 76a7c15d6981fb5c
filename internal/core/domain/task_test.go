package domain_test

import (
	"errors"
	"testing"
	"time"

	"go.trai.ch/deltamake/internal/core/domain"
)

type stubRunner struct {
	result domain.ProcessResult
	err    error
}

func (r *stubRunner) Run(string) (domain.ProcessResult, error) { return r.result, r.err }
func (r *stubRunner) Kill()                                    {}

func TestCommandTask_SpawnFailureAlwaysStopsTheRun(t *testing.T) {
	runner := &stubRunner{err: errors.New("fork failed")}

	// failIfNonZero=false would ordinarily let a non-zero exit pass, but a
	// spawn failure is a different condition and must stop the run either way.
	task := domain.NewCommandTask("t", "cmd", false, runner)

	if ok := task.Execute(); ok {
		t.Error("expected Execute to report failure when the runner could not start the command")
	}
}

func TestCommandTask_NonZeroExitRespectsFailIfNonZero(t *testing.T) {
	runner := &stubRunner{result: domain.ProcessResult{Exited: true, ExitStatus: 1}}

	soft := domain.NewCommandTask("t", "cmd", false, runner)
	if ok := soft.Execute(); !ok {
		t.Error("expected a non-zero exit to be tolerated when failIfNonZero is false")
	}

	hard := domain.NewCommandTask("t", "cmd", true, runner)
	if ok := hard.Execute(); ok {
		t.Error("expected a non-zero exit to stop the run when failIfNonZero is true")
	}
}

func TestCommandTask_SuccessfulExitAlwaysSucceeds(t *testing.T) {
	runner := &stubRunner{result: domain.ProcessResult{Exited: true, ExitStatus: 0}}
	task := domain.NewCommandTask("t", "cmd", true, runner)

	if ok := task.Execute(); !ok {
		t.Error("expected a zero exit to report success")
	}
}

func TestCommandTask_ResultIsCapturedEvenOnSpawnFailure(t *testing.T) {
	runner := &stubRunner{
		result: domain.ProcessResult{Stderr: []byte("deltamake: fork failed\n")},
		err:    errors.New("fork failed"),
	}
	task := domain.NewCommandTask("t", "cmd", true, runner)
	task.Execute()

	if string(task.Result().Stderr) != "deltamake: fork failed\n" {
		t.Errorf("expected captured stderr to survive a spawn failure, got %q", task.Result().Stderr)
	}
}

func TestBarrierTask_SetTargetRebindsRendezvousCount(t *testing.T) {
	b := domain.NewBarrierTask(0)
	b.SetTarget(2)

	if b.IsDone() {
		t.Fatal("expected barrier to not be done before any arrivals")
	}

	done := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		go func() {
			b.Execute()
			done <- struct{}{}
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("barrier did not release both arrivals after SetTarget(2)")
		}
	}
}

func TestBarrierTask_SkipForcesCompletion(t *testing.T) {
	b := domain.NewBarrierTask(5)
	b.Skip()

	if !b.IsDone() {
		t.Error("expected Skip to force the barrier into its satisfied state")
	}
}
