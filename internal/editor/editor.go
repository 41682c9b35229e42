// Package editor implements the interactive editing engine: cursor and
// viewport tracking, the single-write render pipeline, editing operations,
// the modal prompt and the keypress loop that drives them.
//
// An Editor is owned by exactly one goroutine. Every operation runs to
// completion before the next key is read, so no state is locked.
package editor

import (
	"bytes"
	"errors"
	"io"
	"time"

	"yate/internal/buffer"
	"yate/internal/input"
)

// ErrQuit is returned by ProcessKeypress once the user has confirmed quit.
var ErrQuit = errors.New("quit")

const (
	defaultQuitTimes      = 3
	defaultMessageTimeout = 5 * time.Second

	// statusLines is the number of terminal rows used by the status and
	// message bars below the text area.
	statusLines = 2
)

// KeyReader produces decoded keys, blocking until one is available.
type KeyReader interface {
	ReadKey() (input.Key, error)
}

// Saver persists serialized document bytes, returning the byte count written.
type Saver interface {
	Save(path string, data []byte) (int, error)
}

// Recorder is told about every path successfully saved.
type Recorder interface {
	Record(path string) error
}

// Editor is the complete state of one editing session.
type Editor struct {
	doc *buffer.Document

	// cx is a byte offset into row cy; rx is its display column,
	// recomputed on every refresh.
	cx, cy, rx     int
	rowOff, colOff int
	screenRows     int
	screenCols     int

	status        Message
	quitTimes     int
	quitRemaining int
	msgTimeout    time.Duration
	version       string
	now           func() time.Time

	keys    KeyReader
	out     io.Writer
	store   Saver
	history Recorder

	// screen accumulates one frame and is reset at the start of each refresh.
	screen bytes.Buffer
}

// Option configures an Editor.
type Option func(*Editor)

// WithDocument starts the editor on d instead of an empty document.
func WithDocument(d *buffer.Document) Option {
	return func(e *Editor) {
		if d != nil {
			e.doc = d
		}
	}
}

// WithQuitTimes sets how many extra Ctrl-Q presses a dirty document needs.
func WithQuitTimes(n int) Option {
	return func(e *Editor) {
		if n >= 0 {
			e.quitTimes = n
		}
	}
}

// WithMessageTimeout sets how long status messages stay visible.
func WithMessageTimeout(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.msgTimeout = d
		}
	}
}

// WithClock replaces time.Now for status message expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithVersion sets the version shown in the welcome banner.
func WithVersion(v string) Option {
	return func(e *Editor) { e.version = v }
}

// WithHistory records successful saves in r.
func WithHistory(r Recorder) Option {
	return func(e *Editor) { e.history = r }
}

// New returns an editor for a terminal of rows x cols cells. Two rows are
// reserved for the status and message bars.
func New(keys KeyReader, out io.Writer, store Saver, rows, cols int, opts ...Option) *Editor {
	e := &Editor{
		doc:        buffer.New(buffer.DefaultTabStop),
		screenRows: max(1, rows-statusLines),
		screenCols: max(1, cols),
		quitTimes:  defaultQuitTimes,
		msgTimeout: defaultMessageTimeout,
		version:    "dev",
		now:        time.Now,
		keys:       keys,
		out:        out,
		store:      store,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.quitRemaining = e.quitTimes
	return e
}

func (e *Editor) Document() *buffer.Document { return e.doc }

// Cursor returns the logical cursor position as (cx, cy).
func (e *Editor) Cursor() (int, int) { return e.cx, e.cy }

// SetStatus replaces the status message, stamped with the current time.
func (e *Editor) SetStatus(m *MessageBuilder) {
	e.status = m.Stamp(e.now())
}
