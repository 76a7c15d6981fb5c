package config_test

import (
	"os"
	"time"

	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
)

// fakeTerminal is an in-memory ports.Terminal that records ExecSystem calls
// instead of running them, so builder tests stay hermetic.
type fakeTerminal struct {
	execs []string
}

func (f *fakeTerminal) MoveUp(int)          {}
func (f *fakeTerminal) MoveDown(int)        {}
func (f *fakeTerminal) MoveLeft(int)        {}
func (f *fakeTerminal) MoveRight(int)       {}
func (f *fakeTerminal) Flush()              {}
func (f *fakeTerminal) ShowCursor(bool)     {}
func (f *fakeTerminal) ClearDown()          {}
func (f *fakeTerminal) ClearToLineEnd()     {}
func (f *fakeTerminal) Columns() int        { return 80 }
func (f *fakeTerminal) Rows() int           { return 24 }
func (f *fakeTerminal) UpdateSize()         {}
func (f *fakeTerminal) CursorPosition() (int, int, error) {
	return 0, 0, nil
}
func (f *fakeTerminal) Log(ports.LogLevel, string, ...any) {}
func (f *fakeTerminal) Write(string)                       {}
func (f *fakeTerminal) ExecSystem(command string) {
	f.execs = append(f.execs, command)
}
func (f *fakeTerminal) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

var _ ports.Terminal = (*fakeTerminal)(nil)

// fakeLogger is a no-op ports.Logger that records Warn/Detail calls for assertion.
type fakeLogger struct {
	warnings []string
	details  []string
}

func (f *fakeLogger) Info(string, ...any) {}
func (f *fakeLogger) Detail(msg string, args ...any) {
	f.details = append(f.details, msg)
}
func (f *fakeLogger) Warn(msg string, args ...any) {
	f.warnings = append(f.warnings, msg)
}
func (f *fakeLogger) Error(string, ...any) {}

var _ ports.Logger = (*fakeLogger)(nil)

// fakeTaskList records AddCommand/AddBarrier calls without running anything.
type fakeTaskList struct {
	commands []fakeCommand
	barriers int
}

type fakeCommand struct {
	title         string
	command       string
	failIfNonZero bool
}

func (f *fakeTaskList) AddCommand(title, command string, failIfNonZero bool) {
	f.commands = append(f.commands, fakeCommand{title, command, failIfNonZero})
}
func (f *fakeTaskList) AddBarrier() { f.barriers++ }
func (f *fakeTaskList) TaskCount() int {
	return len(f.commands) + f.barriers
}

var _ ports.TaskList = (*fakeTaskList)(nil)

// memDiffStore is an in-memory ports.DifferentialStore, avoiding a
// filesystem round trip in builder tests that only care about in-process
// record state.
type memDiffStore struct {
	saved map[string]*domain.DifferentialRecord
}

func newMemDiffStore() *memDiffStore {
	return &memDiffStore{saved: make(map[string]*domain.DifferentialRecord)}
}

func (m *memDiffStore) Load(path string) (*domain.DifferentialRecord, error) {
	if r, ok := m.saved[path]; ok {
		return r, nil
	}
	return domain.NewDifferentialRecord(), nil
}

func (m *memDiffStore) Save(path string, record *domain.DifferentialRecord) error {
	m.saved[path] = record
	return nil
}

var _ ports.DifferentialStore = (*memDiffStore)(nil)
