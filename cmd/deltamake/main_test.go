package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.trai.ch/deltamake/internal/app"
)

type fakeApp struct {
	runFunc func(ctx context.Context, dir string, buildNames []string, opts app.RunOptions) error
}

func (f *fakeApp) Run(ctx context.Context, dir string, buildNames []string, opts app.RunOptions) error {
	if f.runFunc != nil {
		return f.runFunc(ctx, dir, buildNames, opts)
	}
	return nil
}

type stubLogger struct{ errs []string }

func (s *stubLogger) Info(string, ...any)   {}
func (s *stubLogger) Detail(string, ...any) {}
func (s *stubLogger) Warn(string, ...any)   {}
func (s *stubLogger) Error(msg string, _ ...any) {
	s.errs = append(s.errs, msg)
}

func TestRun_Success(t *testing.T) {
	provider := func() (*app.Components, error) {
		return &app.Components{App: &fakeApp{}, Logger: &stubLogger{}}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

func TestRun_InitializationError(t *testing.T) {
	provider := func() (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ExecutionError(t *testing.T) {
	logger := &stubLogger{}
	provider := func() (*app.Components, error) {
		return &app.Components{
			App: &fakeApp{
				runFunc: func(context.Context, string, []string, app.RunOptions) error {
					return errors.New("load failed")
				},
			},
			Logger: logger,
		}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"default"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, logger.errs, "load failed")
}
