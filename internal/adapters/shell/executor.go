// Package shell runs solution commands through a POSIX shell and captures
// their duplex output, the Go equivalent of the original fork/pipe/exec/poll
// process runner.
package shell

import (
	"bytes"
	"os/exec"
	"sync"
	"syscall"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Runner executes a command line through "sh -c" and captures stdout and
// stderr independently, mirroring CProcess::Exec's pipe-per-stream capture.
type Runner struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewRunner returns a Runner ready to execute a single command. A Runner is
// not reused across commands: the scheduler constructs one per CommandTask.
func NewRunner() *Runner {
	return &Runner{}
}

// Run starts "sh -c <command>" in its own process group, waits for it to
// exit, and returns its captured output. An error is returned if the shell
// could not be started or did not exit normally (for example, it was killed
// by a signal); a non-zero exit is reported through ProcessResult, not as an
// error.
func (r *Runner) Run(command string) (domain.ProcessResult, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return domain.ProcessResult{
			Stderr: []byte("deltamake: " + err.Error() + "\n"),
		}, zerr.Wrap(err, "start command")
	}

	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()

	err := cmd.Wait()

	result := domain.ProcessResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if cmd.ProcessState != nil {
		result.Exited = cmd.ProcessState.Exited()
		result.ExitStatus = cmd.ProcessState.ExitCode()
	}
	if err != nil && !result.Exited {
		return result, zerr.Wrap(err, "wait for command")
	}
	return result, nil
}

// Kill sends SIGKILL to the process group running the command, tearing down
// any grandchildren the shell spawned along with it.
func (r *Runner) Kill() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}

var _ domain.ProcessRunner = (*Runner)(nil)
