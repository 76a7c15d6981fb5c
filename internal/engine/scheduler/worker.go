package scheduler

import (
	"sync"
	"sync/atomic"

	"go.trai.ch/deltamake/internal/core/domain"
)

type workerStatus int32

const (
	statusWaitTask workerStatus = iota
	statusWorking
	statusFail
	statusStopped
)

// worker runs whatever task the scheduler hands it over taskCh, grounded on
// SWorker and WorkerRoutine. A nil task tells it to stop.
type worker struct {
	id     int
	status atomic.Int32
	taskCh chan domain.Task

	mu   sync.Mutex
	task domain.Task
}

func newWorker(id int) *worker {
	w := &worker{id: id, taskCh: make(chan domain.Task, 1)}
	w.status.Store(int32(statusWaitTask))
	return w
}

func (w *worker) setTask(t domain.Task) {
	w.mu.Lock()
	w.task = t
	w.mu.Unlock()
	w.taskCh <- t
}

func (w *worker) currentTask() domain.Task {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.task
}

// run is the worker's goroutine body: wait for a task, execute it, repeat
// until handed a nil task or a task reports failure.
func (w *worker) run() {
	for {
		w.status.Store(int32(statusWaitTask))

		task := <-w.taskCh
		if task == nil {
			break
		}

		w.status.Store(int32(statusWorking))
		if !task.Execute() {
			w.status.Store(int32(statusFail))
			return
		}
	}
	w.status.Store(int32(statusStopped))
}
