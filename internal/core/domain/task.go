package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

// TaskKind distinguishes the two task variants a build plan can queue.
type TaskKind int

const (
	// TaskCommand runs a shell command on a single worker.
	TaskCommand TaskKind = iota
	// TaskBarrier blocks every worker until all of them have reached it.
	TaskBarrier
)

// ProcessResult is the captured outcome of a completed command task.
type ProcessResult struct {
	Stdout     []byte
	Stderr     []byte
	ExitStatus int
	Exited     bool
}

// ProcessRunner executes a shell command and captures its duplex output.
// Implementations must support Kill from a goroutine other than the one
// blocked in Run.
type ProcessRunner interface {
	Run(command string) (ProcessResult, error)
	Kill()
}

// Task is a unit of work a Worker can be handed: either a CommandTask or a
// BarrierTask. Both satisfy this interface so the scheduler can treat its
// task list uniformly.
type Task interface {
	Title() string
	Kind() TaskKind
	// Execute runs the task to completion and reports whether the worker
	// holding it should keep going. A barrier always returns true; a
	// command returns false when it could not be run at all, or when it
	// exited non-zero and was configured to fail on that.
	Execute() bool
}

// CommandTask runs a single shell command through a ProcessRunner.
type CommandTask struct {
	title         string
	command       string
	failIfNonZero bool
	runner        ProcessRunner

	mu     sync.Mutex
	result ProcessResult
}

// NewCommandTask builds a CommandTask bound to the runner that will execute it.
func NewCommandTask(title, command string, failIfNonZero bool, runner ProcessRunner) *CommandTask {
	return &CommandTask{title: title, command: command, failIfNonZero: failIfNonZero, runner: runner}
}

func (t *CommandTask) Title() string   { return t.title }
func (t *CommandTask) Kind() TaskKind  { return TaskCommand }
func (t *CommandTask) Command() string { return t.command }

// Execute runs the underlying command and records its captured output.
// A spawn/pipe/poll failure always stops the run; a non-zero exit only
// stops it when the task is configured to fail on one.
func (t *CommandTask) Execute() bool {
	result, err := t.runner.Run(t.command)

	t.mu.Lock()
	t.result = result
	t.mu.Unlock()

	if err != nil {
		return false
	}
	if t.failIfNonZero && (!result.Exited || result.ExitStatus != 0) {
		return false
	}
	return true
}

// Result returns the most recently captured process output. Safe to call
// while a concurrent Execute is still draining the previous run's output,
// since the scheduler only reads a task's result after Execute returns.
func (t *CommandTask) Result() ProcessResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// KillProcess asks the underlying runner to terminate the in-flight process.
func (t *CommandTask) KillProcess() {
	t.runner.Kill()
}

// BarrierTask rendezvouses every worker before any of them proceeds past it.
// The same instance is handed to an idle worker repeatedly until IsDone
// reports that every worker has arrived.
type BarrierTask struct {
	counter atomic.Int32
	target  int32
}

// NewBarrierTask creates a barrier that waits for nWorkers arrivals.
func NewBarrierTask(nWorkers int) *BarrierTask {
	return &BarrierTask{target: int32(nWorkers)}
}

// SetTarget rebinds how many arrivals the barrier waits for. The scheduler
// calls this against the current worker count at Start time, since a
// barrier may be queued before Init allocates the pool it needs to
// rendezvous against.
func (b *BarrierTask) SetTarget(nWorkers int) {
	b.target = int32(nWorkers)
}

func (b *BarrierTask) Title() string  { return "barrier" }
func (b *BarrierTask) Kind() TaskKind { return TaskBarrier }

// Execute records this worker's arrival and then blocks until every other
// worker has arrived too.
func (b *BarrierTask) Execute() bool {
	b.counter.Add(1)
	for !b.IsDone() {
		time.Sleep(barrierPollInterval)
	}
	return true
}

// Skip forces the barrier to its satisfied state, used when the scheduler
// is stopping and wants idle workers to fall through rather than wait.
func (b *BarrierTask) Skip() {
	b.counter.Store(b.target)
}

// IsDone reports whether every worker has arrived at the barrier.
func (b *BarrierTask) IsDone() bool {
	return b.counter.Load() >= b.target
}

const barrierPollInterval = 5 * time.Millisecond
