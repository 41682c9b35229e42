package editor

import (
	"errors"
	"os"

	"yate/internal/log"
)

// insertChar inserts c at the cursor, first materializing a row when the
// cursor sits on the virtual row past the end of the document.
func (e *Editor) insertChar(c byte) {
	if e.cy == e.doc.NumRows() {
		e.doc.InsertRow(e.doc.NumRows(), nil)
	}
	e.doc.RowInsertChar(e.cy, e.cx, c)
	e.cx++
}

// insertNewline splits the current row at the cursor.
func (e *Editor) insertNewline() {
	if e.cx == 0 {
		e.doc.InsertRow(e.cy, nil)
	} else {
		row := e.doc.Row(e.cy)
		e.doc.InsertRow(e.cy+1, row.Chars()[e.cx:])
		e.doc.RowTruncate(e.cy, e.cx)
	}
	e.cy++
	e.cx = 0
}

// delChar deletes the byte before the cursor, joining the current row onto
// the previous one when the cursor is at the start of a row.
func (e *Editor) delChar() {
	if e.cy == e.doc.NumRows() {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}
	if e.cx > 0 {
		e.doc.RowDeleteChar(e.cy, e.cx-1)
		e.cx--
		return
	}
	e.cx = e.doc.RowLen(e.cy - 1)
	e.doc.RowAppendString(e.cy-1, e.doc.Row(e.cy).Chars())
	e.doc.DeleteRow(e.cy)
	e.cy--
}

// save writes the document to its file, asking for a name first when it
// has none. Failures are reported in the message bar and leave the
// document untouched; only a failing key read is returned.
func (e *Editor) save() error {
	name := e.doc.Filename()
	if name == "" {
		answer, ok, err := e.prompt("Save as: ", " (ESC to cancel)")
		if err != nil {
			return err
		}
		if !ok {
			e.SetStatus(Msg("Save aborted"))
			return nil
		}
		name = answer
	}

	data := e.doc.Bytes()
	n, err := e.store.Save(name, data)
	if err != nil {
		log.ErrorErr(log.CatEditor, "save failed", err, "path", name)
		e.SetStatus(Msg("Can't save! I/O error: ").Str(ioErrText(err)))
		return nil
	}
	e.doc.SetFilename(name)
	e.doc.MarkClean()
	e.SetStatus(Msg("").Int(n).Str(" bytes written to disk"))
	log.Debug(log.CatEditor, "saved", "path", name, "bytes", n)

	if e.history != nil {
		if err := e.history.Record(name); err != nil {
			log.ErrorErr(log.CatEditor, "record history", err, "path", name)
		}
	}
	return nil
}

// find prompts for a query and jumps to the first row containing it.
// The row offset is pushed past the end so the next refresh scrolls the
// match to the top of the screen.
func (e *Editor) find() error {
	query, ok, err := e.prompt("Search: ", " (ESC to cancel)")
	if err != nil || !ok {
		return err
	}
	y, rx, found := e.doc.Find([]byte(query))
	if !found {
		e.SetStatus(Msg("No match for ").Quoted(query))
		log.Debug(log.CatEditor, "search miss", "query", query)
		return nil
	}
	e.cy = y
	e.cx = e.doc.Row(y).RxToCx(rx)
	e.rowOff = e.doc.NumRows()
	log.Debug(log.CatEditor, "search hit", "query", query, "row", y, "col", e.cx)
	return nil
}

// ioErrText reduces path errors to their errno text.
func ioErrText(err error) string {
	if err == nil {
		return ""
	}
	var pe *os.PathError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
