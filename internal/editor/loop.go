package editor

import (
	"errors"
	"fmt"

	"yate/internal/input"
	"yate/internal/log"
)

var (
	keyQuit    = input.ByteKey(input.Ctrl('q'))
	keySave    = input.ByteKey(input.Ctrl('s'))
	keyFind    = input.ByteKey(input.Ctrl('f'))
	keyRefresh = input.ByteKey(input.Ctrl('l'))
)

// Run alternates refresh and keypress handling until the user quits.
func (e *Editor) Run() error {
	for {
		if err := e.Refresh(); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		if err := e.ProcessKeypress(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// ProcessKeypress reads one key and applies it. It returns ErrQuit when
// the session should end.
func (e *Editor) ProcessKeypress() error {
	k, err := e.keys.ReadKey()
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}
	log.Debug(log.CatInput, "key", "key", k)
	return e.handleKey(k)
}

func (e *Editor) handleKey(k input.Key) error {
	switch k {
	case keyEnter:
		e.insertNewline()

	case keyQuit:
		if e.doc.Dirty() && e.quitRemaining > 0 {
			e.SetStatus(Msg("WARNING!!! File has unsaved changes. Press Ctrl-Q ").
				Int(e.quitRemaining).Str(" more times to quit."))
			log.Debug(log.CatEditor, "quit blocked", "remaining", e.quitRemaining)
			e.quitRemaining--
			return nil
		}
		if err := e.clearTerminal(); err != nil {
			return err
		}
		return ErrQuit

	case keySave:
		if err := e.save(); err != nil {
			return err
		}

	case keyFind:
		if err := e.find(); err != nil {
			return err
		}

	case input.Named(input.Home):
		e.cx = 0

	case input.Named(input.End):
		e.cx = e.doc.RowLen(e.cy)

	case keyBackspace, keyCtrlH, keyDelete:
		if k == keyDelete {
			e.moveCursor(input.ArrowRight)
		}
		e.delChar()

	case input.Named(input.PageUp), input.Named(input.PageDown):
		e.page(k.Code)

	case input.Named(input.ArrowUp), input.Named(input.ArrowDown),
		input.Named(input.ArrowLeft), input.Named(input.ArrowRight):
		e.moveCursor(k.Code)

	case keyRefresh, keyEscape:

	default:
		if insertable(k) {
			e.insertChar(k.Byte)
		}
	}

	e.quitRemaining = e.quitTimes
	return nil
}

// insertable reports whether k is a literal byte that belongs in the
// document: printable ASCII, a tab, or any byte with the high bit set.
func insertable(k input.Key) bool {
	return k.Code == input.Byte && (k.Byte == '\t' || !k.IsControl())
}
