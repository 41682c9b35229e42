package editor

import "yate/internal/input"

// moveCursor takes one step in the direction of an arrow key. Left at the
// start of a row wraps to the end of the previous row and Right at the
// end of a row wraps to the start of the next one.
func (e *Editor) moveCursor(dir input.Code) {
	row := e.doc.Row(e.cy)
	switch dir {
	case input.ArrowLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.doc.RowLen(e.cy)
		}
	case input.ArrowRight:
		if row != nil && e.cx < row.Len() {
			e.cx++
		} else if row != nil && e.cx == row.Len() {
			e.cy++
			e.cx = 0
		}
	case input.ArrowUp:
		if e.cy != 0 {
			e.cy--
		}
	case input.ArrowDown:
		if e.cy < e.doc.NumRows() {
			e.cy++
		}
	}

	if rowLen := e.doc.RowLen(e.cy); e.cx > rowLen {
		e.cx = rowLen
	}
}

// page moves the cursor a full screen up or down, starting from the top or
// bottom edge of the viewport.
func (e *Editor) page(dir input.Code) {
	step := input.ArrowUp
	if dir == input.PageUp {
		e.cy = e.rowOff
	} else {
		step = input.ArrowDown
		e.cy = min(e.rowOff+e.screenRows-1, e.doc.NumRows())
	}
	for i, n := 0, e.screenRows; i < n; i++ {
		e.moveCursor(step)
	}
}

// scroll recomputes rx and adjusts the offsets so the cursor is inside
// the visible window.
func (e *Editor) scroll() {
	e.rx = e.cx
	if row := e.doc.Row(e.cy); row != nil {
		e.rx = row.CxToRx(e.cx)
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.cy >= e.rowOff+e.screenRows {
		e.rowOff = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOff {
		e.colOff = e.rx
	}
	if e.rx >= e.colOff+e.screenCols {
		e.colOff = e.rx - e.screenCols + 1
	}
}
