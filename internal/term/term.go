// Package term configures the controlling terminal for the editor: raw
// input mode with a bounded read timeout, window geometry, and
// timeout-aware byte polling.
package term

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"yate/internal/log"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

const (
	// cursorProbe moves the cursor to the bottom-right corner and asks the
	// terminal to report its position.
	cursorProbe = "\x1b[999C\x1b[999B\x1b[6n"
	// reportPolls bounds how many read timeouts to wait for the report.
	reportPolls = 10
	maxReport   = 32
)

// Terminal is the editor's controlling terminal.
type Terminal struct {
	in, out *os.File
	inFd    int
	orig    *unix.Termios
}

// Open checks that in and out are terminals and wraps them.
func Open(in, out *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("stdin: %w", ErrNotTerminal)
	}
	if !term.IsTerminal(int(out.Fd())) {
		return nil, fmt.Errorf("stdout: %w", ErrNotTerminal)
	}
	return newTerminal(in, out), nil
}

func newTerminal(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out, inFd: int(in.Fd())}
}

// EnableRawMode switches input to raw mode: no echo, no canonical line
// editing, no signal keys or flow control, 8-bit input, no output
// post-processing, and reads that return after at most 100ms.
func (t *Terminal) EnableRawMode() error {
	orig, err := unix.IoctlGetTermios(t.inFd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("tcgetattr: %w", err)
	}
	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	t.orig = orig
	log.Debug(log.CatTerm, "raw mode enabled")
	return nil
}

// Restore puts back the terminal settings saved by EnableRawMode. It is
// safe to call more than once.
func (t *Terminal) Restore() error {
	if t.orig == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, t.orig); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	t.orig = nil
	log.Debug(log.CatTerm, "raw mode restored")
	return nil
}

// Poll reads one byte. It returns ok == false when the raw-mode read
// timeout expired with no input.
func (t *Terminal) Poll() (byte, bool, error) {
	var b [1]byte
	n, err := unix.Read(t.inFd, b[:])
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return b[0], true, nil
}

// Write sends p to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the window size in cells. When the size ioctl is
// unavailable it falls back to probing the cursor position, which needs
// raw mode to be enabled.
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(t.out.Fd()))
	if err == nil && cols > 0 {
		return rows, cols, nil
	}
	log.Warn(log.CatTerm, "window size ioctl failed, probing cursor", "err", err)
	return t.probeSize()
}

func (t *Terminal) probeSize() (int, int, error) {
	if _, err := t.out.WriteString(cursorProbe); err != nil {
		return 0, 0, fmt.Errorf("cursor probe: %w", err)
	}
	var buf []byte
	for polls := 0; len(buf) < maxReport-1 && polls < reportPolls; {
		c, ok, err := t.Poll()
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			polls++
			continue
		}
		if c == 'R' {
			return parseCursorReport(buf)
		}
		buf = append(buf, c)
	}
	return 0, 0, errors.New("cursor probe: no position report")
}

// parseCursorReport parses "ESC [ rows ; cols" (the terminating R
// already consumed).
func parseCursorReport(b []byte) (int, int, error) {
	if len(b) < 2 || b[0] != 0x1b || b[1] != '[' {
		return 0, 0, fmt.Errorf("cursor report %q: missing CSI", b)
	}
	body := b[2:]
	for i, c := range body {
		if c != ';' {
			continue
		}
		rows, err := strconv.Atoi(string(body[:i]))
		if err != nil {
			return 0, 0, fmt.Errorf("cursor report %q: %w", b, err)
		}
		cols, err := strconv.Atoi(string(body[i+1:]))
		if err != nil {
			return 0, 0, fmt.Errorf("cursor report %q: %w", b, err)
		}
		if rows < 1 || cols < 1 {
			return 0, 0, fmt.Errorf("cursor report %q: empty window", b)
		}
		return rows, cols, nil
	}
	return 0, 0, fmt.Errorf("cursor report %q: missing separator", b)
}
