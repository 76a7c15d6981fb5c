// Package terminal implements the raw-ANSI terminal capability the
// Scheduler's dashboard and the Build Planner's synchronous steps render
// through, translating the original's direct POSIX syscalls
// (ioctl/termios/escape sequences) into their Go equivalents.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleDetail  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Terminal implements ports.Terminal against the real stdout/stdin/stderr.
type Terminal struct {
	verbose bool
	out     *bufio.Writer
	columns int
	rows    int
}

// New returns a Terminal writing to os.Stdout, buffered the way the
// original sets stdout to full buffering while the dashboard is live.
func New(verbose bool) *Terminal {
	t := &Terminal{
		verbose: verbose,
		out:     bufio.NewWriter(os.Stdout),
	}
	t.UpdateSize()
	return t
}

func (t *Terminal) MoveUp(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(t.out, "\033[%dA", n)
}

func (t *Terminal) MoveDown(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(t.out, "\033[%dB", n)
}

func (t *Terminal) MoveRight(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(t.out, "\033[%dC", n)
}

func (t *Terminal) MoveLeft(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(t.out, "\033[%dD", n)
}

func (t *Terminal) Flush() {
	_ = t.out.Flush()
}

func (t *Terminal) ShowCursor(show bool) {
	if show {
		fmt.Fprint(t.out, "\033[?25h")
	} else {
		fmt.Fprint(t.out, "\033[?25l")
	}
	t.Flush()
}

func (t *Terminal) ClearDown() {
	fmt.Fprint(t.out, "\033[0J")
}

func (t *Terminal) ClearToLineEnd() {
	fmt.Fprint(t.out, "\033[0K")
}

// SetVerbose toggles whether LogDetail messages are rendered, letting the
// CLI layer apply a --verbose flag to a Terminal Graft already constructed
// with a default.
func (t *Terminal) SetVerbose(verbose bool) {
	t.verbose = verbose
}

func (t *Terminal) Columns() int { return t.columns }
func (t *Terminal) Rows() int    { return t.rows }

// UpdateSize re-queries the terminal's current size via the controlling tty.
func (t *Terminal) UpdateSize() {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		// Not attached to a tty (redirected output): fall back to a
		// reasonable default rather than erroring the whole run.
		t.columns, t.rows = 80, 24
		return
	}
	t.columns, t.rows = cols, rows
}

// CursorPosition queries the terminal for the cursor's current row/column
// by writing the device-status-report escape sequence and reading its
// reply from stdin in raw mode, mirroring the original's termios dance.
func (t *Terminal) CursorPosition() (row, col int, err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, 0, zerr.Wrap(err, "enter raw mode")
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	t.Flush()
	if _, err := fmt.Fprint(os.Stdout, "\033[6n"); err != nil {
		return 0, 0, zerr.Wrap(err, "write cursor position request")
	}

	var resp strings.Builder
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return 0, 0, zerr.Wrap(err, "read cursor position reply")
		}
		resp.WriteByte(buf[0])
		if buf[0] == 'R' {
			break
		}
	}

	body := resp.String()
	open := strings.IndexByte(body, '[')
	semi := strings.IndexByte(body, ';')
	if open < 0 || semi < 0 {
		return 0, 0, zerr.With(zerr.New("malformed cursor position reply"), "reply", body)
	}
	row, err = strconv.Atoi(body[open+1 : semi])
	if err != nil {
		return 0, 0, zerr.Wrap(err, "parse cursor row")
	}
	col, err = strconv.Atoi(strings.TrimSuffix(body[semi+1:], "R"))
	if err != nil {
		return 0, 0, zerr.Wrap(err, "parse cursor column")
	}
	return row, col, nil
}

func (t *Terminal) Log(level ports.LogLevel, format string, args ...any) {
	if level == ports.LogDetail && !t.verbose {
		return
	}

	msg := fmt.Sprintf(format, args...)
	var w io.Writer = t.out
	switch level {
	case ports.LogError:
		msg = styleError.Render(msg)
		fmt.Fprint(w, msg)
	case ports.LogWarning:
		msg = styleWarning.Render(msg)
		fmt.Fprint(w, msg)
	case ports.LogDetail:
		msg = styleDetail.Render(msg)
		fmt.Fprint(w, msg)
	default:
		fmt.Fprint(w, msg)
	}
	t.Flush()
}

func (t *Terminal) Write(s string) {
	fmt.Fprint(t.out, s)
}

// ExecSystem runs a command through "sh -c", inheriting the current
// process's stdio, and terminates the whole process on a non-zero exit.
func (t *Terminal) ExecSystem(command string) {
	t.Flush()
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Log(ports.LogError, "failed to run command: %v\n", err)
		os.Exit(1)
	}
	if exitErr.ExitCode() != 0 {
		os.Exit(1)
	}
}

func (t *Terminal) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

var _ ports.Terminal = (*Terminal)(nil)
