// Package scheduler runs a build's queued task list across a fixed pool of
// workers, rendering a live worker-status dashboard, grounded on
// CSchedulerLocal and its WorkerRoutine/SWorker collaborators.
package scheduler

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/zerr"
)

type runStatus int32

const (
	statusIdle runStatus = iota
	statusRunning
	statusStopping
	statusKilling
)

// minWorkerTitle is the minimum column width reserved for a worker's title
// when laying out the dashboard grid, independent of the longer title a
// Command task may carry (which the dashboard still truncates to
// domain.MaxWorkerTitle).
const minWorkerTitle = 8

// Scheduler is the fixed-pool, barrier-aware task runner: AddCommand and
// AddBarrier queue work before Start, Start drains the queue across
// Init's worker slots until it empties or a SIGINT stops/kills the run.
type Scheduler struct {
	term          ports.Terminal
	runnerFactory func() domain.ProcessRunner

	mu       sync.Mutex
	tasks    []domain.Task
	nextTask int
	workers  []*worker
	status   runStatus

	spinnerIndex int
	topOffset    int
}

// New returns a Scheduler that renders through term and hands every queued
// CommandTask a fresh ProcessRunner from runnerFactory.
func New(term ports.Terminal, runnerFactory func() domain.ProcessRunner) *Scheduler {
	return &Scheduler{term: term, runnerFactory: runnerFactory}
}

// Init allocates nWorkers worker slots. Must be called before Start.
func (s *Scheduler) Init(nWorkers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = make([]*worker, nWorkers)
	for i := range s.workers {
		s.workers[i] = newWorker(i)
	}
}

// GetList exposes the Scheduler as the TaskList a Build Planner pass queues onto.
func (s *Scheduler) GetList() ports.TaskList { return s }

// AddCommand queues a command task. Refused while a run is in progress.
func (s *Scheduler) AddCommand(title, command string, failIfNonZero bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != statusIdle {
		s.term.Log(ports.LogWarning, "scheduler is running, cannot queue %q\n", title)
		return
	}
	task := domain.NewCommandTask(title, command, failIfNonZero, s.runnerFactory())
	s.tasks = append(s.tasks, task)
	s.term.Log(ports.LogDetail, "%s:\n\t%s\n", title, command)
}

// AddBarrier queues a barrier every worker must reach before any proceeds
// past it. The barrier's rendezvous target is resolved against the worker
// count at Start, not here, since AddBarrier is ordinarily called while
// planning a build, before Init has allocated the pool.
func (s *Scheduler) AddBarrier() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != statusIdle {
		s.term.Log(ports.LogWarning, "scheduler is running, cannot queue a barrier\n")
		return
	}
	task := domain.NewBarrierTask(len(s.workers))
	s.tasks = append(s.tasks, task)
	s.term.Log(ports.LogDetail, "barrier\n")
}

// TaskCount reports the number of tasks currently queued.
func (s *Scheduler) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop lets in-flight tasks finish but drops the remaining queue, the
// scheduler's reaction to a first SIGINT.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	s.status = statusStopping
	s.nextTask = len(s.tasks)
}

// Kill stops the queue and terminates in-flight command processes, the
// scheduler's reaction to a second SIGINT.
func (s *Scheduler) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.status = statusKilling
}

// Start runs the queued tasks to completion (or until stopped/killed),
// blocking until every worker has exited.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		s.term.Log(ports.LogWarning, "scheduler task list is empty, abort start\n")
		return nil
	}
	if len(s.workers) == 0 {
		s.mu.Unlock()
		return domain.ErrNoWorkers
	}
	if s.status == statusRunning {
		s.mu.Unlock()
		return domain.ErrAlreadyRunning
	}
	s.status = statusRunning
	workers := s.workers
	for _, task := range s.tasks {
		if barrier, ok := task.(*domain.BarrierTask); ok {
			barrier.SetTarget(len(workers))
		}
	}
	s.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			w.run()
		}(w)
	}

	s.term.ShowCursor(false)
	defer s.term.ShowCursor(true)

	ticker := time.NewTicker(domain.SchedulerTickInterval)
	defer ticker.Stop()

	done := ctx.Done()
	firstSignal := true
	for {
		select {
		case <-done:
			// A canceled context stays ready forever; stop watching it so
			// the loop keeps its tick pacing, and count it as the first
			// signal.
			done = nil
			firstSignal = false
			s.Stop()
		case <-sigCh:
			if firstSignal {
				firstSignal = false
				s.Stop()
			} else {
				s.Kill()
			}
		case <-ticker.C:
		}

		if s.tick() {
			break
		}
	}

	s.finish()
	wg.Wait()

	s.mu.Lock()
	failed := false
	for _, w := range workers {
		if workerStatus(w.status.Load()) == statusFail {
			failed = true
			break
		}
	}
	s.status = statusIdle
	s.mu.Unlock()

	s.renderOnce()

	s.mu.Lock()
	s.tasks = nil
	s.nextTask = 0
	s.workers = nil
	s.mu.Unlock()

	if failed {
		return zerr.Wrap(domain.ErrTaskFailed, "build run")
	}
	return nil
}

// tick runs one pass of the assignment loop and reports whether every
// worker has stopped (the run is complete).
func (s *Scheduler) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	nStopped := 0
	for _, w := range s.workers {
		switch workerStatus(w.status.Load()) {
		case statusWorking:
			if s.status != statusRunning {
				if barrier, ok := w.currentTask().(*domain.BarrierTask); ok {
					barrier.Skip()
				}
			}
			if s.status == statusKilling {
				s.killWorkerTask(w)
			}
		case statusWaitTask:
			s.giveWorkerTask(w)
		case statusFail:
			if s.status != statusStopping {
				s.stopLocked()
			}
			nStopped++
		case statusStopped:
			nStopped++
		}
	}

	if nStopped == len(s.workers) {
		return true
	}

	s.renderLocked()
	return false
}

func (s *Scheduler) giveWorkerTask(w *worker) {
	if s.nextTask == len(s.tasks) {
		w.setTask(nil)
		return
	}

	s.showCommandStatus(w)

	current := s.tasks[s.nextTask]
	w.setTask(current)

	if barrier, ok := current.(*domain.BarrierTask); ok {
		if barrier.IsDone() {
			s.nextTask++
		}
	} else {
		s.nextTask++
	}
}

func (s *Scheduler) killWorkerTask(w *worker) {
	if cmd, ok := w.currentTask().(*domain.CommandTask); ok {
		cmd.KillProcess()
	}
	w.status.Store(int32(statusFail))
}

// finish shows the output of any worker that ended on a failed command and
// settles every other worker's displayed status, mirroring the original's
// pre-join cleanup pass.
func (s *Scheduler) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.workers {
		if workerStatus(w.status.Load()) == statusFail {
			if w.currentTask() != nil {
				s.showCommandStatus(w)
			}
		}
	}
	s.renderLocked()
}

func (s *Scheduler) renderOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked()
}
