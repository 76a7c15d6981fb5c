package scheduler

import (
	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
)

var spinnerFrames = [...]byte{'-', '\\', '|', '/'}

func (s *Scheduler) spinnerChar(w *worker) byte {
	switch workerStatus(w.status.Load()) {
	case statusWaitTask:
		return '*'
	case statusWorking:
		return spinnerFrames[s.spinnerIndex%len(spinnerFrames)]
	case statusFail:
		return 'X'
	case statusStopped:
		return '='
	default:
		return '?'
	}
}

// renderLocked redraws the worker grid and status line in place, grounded
// on CSchedulerLocal::UpdateStatus. Callers must hold s.mu.
func (s *Scheduler) renderLocked() {
	s.spinnerIndex++
	s.term.UpdateSize()

	nWorkers := len(s.workers)
	columns := s.term.Columns()

	minSize := 4 + minWorkerTitle
	maxInLine := columns / minSize
	if maxInLine < 1 {
		maxInLine = 1
	}

	nLines := nWorkers/maxInLine + 1
	if nWorkers%maxInLine != 0 {
		nLines++
	}
	maxTitle := minWorkerTitle + (columns-maxInLine*minSize)/maxInLine

	if nLines > s.topOffset {
		for i := 0; i < nLines-s.topOffset; i++ {
			s.term.Log(ports.LogInfo, "\n")
		}
		s.topOffset = nLines
	}

	s.term.MoveUp(s.topOffset)
	s.term.MoveLeft(columns)

	nInLine := 0
	for _, w := range s.workers {
		task := w.currentTask()
		title := ""
		if task != nil {
			title = task.Title()
		}
		if len(title) > domain.MaxWorkerTitle {
			title = title[:domain.MaxWorkerTitle]
		}

		s.term.Log(ports.LogInfo, "[%c] %-*s", s.spinnerChar(w), maxTitle, title)

		nInLine++
		if nInLine == maxInLine {
			nInLine = 0
			s.term.Log(ports.LogInfo, "\n\r")
		}
	}
	if nInLine != 0 {
		s.term.Log(ports.LogInfo, "\n\r")
	}

	switch s.status {
	case statusIdle:
		s.term.ClearDown()
		s.term.Log(ports.LogInfo, "Ready.\n\r")
	case statusRunning:
		s.term.Log(ports.LogInfo, "[%3d/%-3d]\n\r", s.nextTask, len(s.tasks))
	case statusStopping:
		s.term.Log(ports.LogInfo, "Stopping workers...\n\r")
	case statusKilling:
		s.term.Log(ports.LogInfo, "Terminating in-flight processes...\n\r")
	}

	s.term.Flush()
}

// showCommandStatus flushes a finished command task's captured output above
// the live dashboard, grounded on CSchedulerLocal::ShowCommandStatus.
// Callers must hold s.mu.
func (s *Scheduler) showCommandStatus(w *worker) {
	cmd, ok := w.currentTask().(*domain.CommandTask)
	if !ok {
		return
	}

	result := cmd.Result()
	if len(result.Stdout) == 0 && len(result.Stderr) == 0 {
		return
	}

	s.term.MoveUp(s.topOffset)
	s.term.MoveLeft(s.term.Columns())
	s.term.ClearDown()
	s.term.Flush()

	oldRow, _, _ := s.term.CursorPosition()

	if len(result.Stdout) > 0 {
		s.term.Log(ports.LogInfo, "%s | %s", cmd.Title(), string(result.Stdout))
		if result.Stdout[len(result.Stdout)-1] != '\n' {
			s.term.Write("\n")
		}
	}
	if len(result.Stderr) > 0 {
		s.term.Log(ports.LogError, "%s | %s", cmd.Title(), string(result.Stderr))
		if result.Stderr[len(result.Stderr)-1] != '\n' {
			s.term.Write("\n")
		}
	}

	s.term.Flush()
	newRow, _, _ := s.term.CursorPosition()
	if oldRow == newRow {
		newRow++
	}

	offset := newRow - oldRow
	if offset >= s.topOffset {
		s.topOffset = 0
	} else {
		s.topOffset -= offset
	}
	s.term.MoveDown(s.topOffset)

	s.renderLocked()
}

var _ ports.Scheduler = (*Scheduler)(nil)
var _ ports.TaskList = (*Scheduler)(nil)
