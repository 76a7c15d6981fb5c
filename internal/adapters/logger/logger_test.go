package logger_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"go.trai.ch/deltamake/internal/adapters/logger"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	output := <-done
	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	os.Stderr = originalStderr

	return output, nil
}

func TestLoggerInfo(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New(false)
		lg.Info("some message")
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if !strings.Contains(output, "some message") {
		t.Errorf("expected output to contain 'some message', got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("expected output to contain 'INFO', got: %s", output)
	}
}

func TestLoggerDetailRespectsVerboseFlag(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New(false)
		lg.Detail("hidden detail")
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if strings.Contains(output, "hidden detail") {
		t.Errorf("expected detail message to be suppressed without verbose mode, got: %s", output)
	}

	output, err = captureStderr(func() {
		lg := logger.New(true)
		lg.Detail("shown detail")
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if !strings.Contains(output, "shown detail") {
		t.Errorf("expected detail message to be shown in verbose mode, got: %s", output)
	}
}

func TestLoggerSetVerboseTogglesDetail(t *testing.T) {
	lg := logger.New(false)

	// lg was built before captureStderr swapped os.Stderr, so each capture
	// points it at the redirected stream first.
	output, err := captureStderr(func() {
		lg.SetOutput(os.Stderr)
		lg.Detail("still hidden")
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if strings.Contains(output, "still hidden") {
		t.Errorf("expected detail message to be suppressed before SetVerbose, got: %s", output)
	}

	lg.SetVerbose(true)
	output, err = captureStderr(func() {
		lg.SetOutput(os.Stderr)
		lg.Detail("now shown")
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if !strings.Contains(output, "now shown") {
		t.Errorf("expected detail message to be shown after SetVerbose, got: %s", output)
	}
}

func TestLoggerError(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New(false)
		lg.Error("operation failed", "error", os.ErrPermission)
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if !strings.Contains(output, "permission denied") {
		t.Errorf("expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("expected output to contain 'ERROR', got: %s", output)
	}
}

func TestLoggerWarn(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New(false)
		lg.Warn("some warning")
	})
	if err != nil {
		t.Fatalf("failed to capture stderr: %v", err)
	}
	if !strings.Contains(output, "some warning") {
		t.Errorf("expected output to contain 'some warning', got: %s", output)
	}
	if !strings.Contains(output, "WARN") {
		t.Errorf("expected output to contain 'WARN', got: %s", output)
	}
}
