package editor

import (
	"bytes"
	"strconv"
)

const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	cursorHome  = "\x1b[H"
	clearLine   = "\x1b[K"
	clearScreen = "\x1b[2J"
	invertVideo = "\x1b[7m"
	resetAttrs  = "\x1b[m"

	noName        = "[No Name]"
	maxNameInBar  = 20
	welcomePrefix = "Yate Editor -- version "
)

// Refresh draws one complete frame and sends it to the terminal in a
// single write.
func (e *Editor) Refresh() error {
	e.scroll()

	b := &e.screen
	b.Reset()
	b.WriteString(hideCursor)
	b.WriteString(cursorHome)
	e.drawRows(b)
	e.drawStatusBar(b)
	e.drawMessageBar(b)
	writeCursorPos(b, e.cy-e.rowOff+1, e.rx-e.colOff+1)
	b.WriteString(showCursor)

	_, err := e.out.Write(b.Bytes())
	return err
}

func writeCursorPos(b *bytes.Buffer, row, col int) {
	var num [20]byte
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(num[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(num[:0], int64(col), 10))
	b.WriteByte('H')
}

func (e *Editor) drawRows(b *bytes.Buffer) {
	numRows := e.doc.NumRows()
	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowOff
		if filerow >= numRows {
			if numRows == 0 && y == e.screenRows/3 {
				e.drawWelcome(b)
			} else {
				b.WriteByte('~')
			}
		} else {
			render := e.doc.Row(filerow).Render()
			if e.colOff < len(render) {
				end := min(len(render), e.colOff+e.screenCols)
				for _, c := range render[e.colOff:end] {
					b.WriteByte(safeTermByte(c))
				}
			}
		}
		b.WriteString(clearLine)
		b.WriteString("\r\n")
	}
}

func (e *Editor) drawWelcome(b *bytes.Buffer) {
	welcome := welcomePrefix + e.version
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}
	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		b.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		b.WriteByte(' ')
	}
	b.WriteString(welcome)
}

func (e *Editor) drawStatusBar(b *bytes.Buffer) {
	name := e.doc.Filename()
	if name == "" {
		name = noName
	}
	if len(name) > maxNameInBar {
		name = name[:maxNameInBar]
	}
	left := safeTermString(name) + " - " + strconv.Itoa(e.doc.NumRows()) + " lines "
	if e.doc.Dirty() {
		left += "(modified)"
	}
	right := strconv.Itoa(e.cy+1) + "/" + strconv.Itoa(e.doc.NumRows())

	b.WriteString(invertVideo)
	if len(left) > e.screenCols {
		left = left[:e.screenCols]
	}
	b.WriteString(left)
	for n := len(left); n < e.screenCols; n++ {
		if e.screenCols-n == len(right) {
			b.WriteString(right)
			break
		}
		b.WriteByte(' ')
	}
	b.WriteString(resetAttrs)
	b.WriteString("\r\n")
}

func (e *Editor) drawMessageBar(b *bytes.Buffer) {
	b.WriteString(clearLine)
	if !e.status.Visible(e.now(), e.msgTimeout) {
		return
	}
	msg := e.status.Text()
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	b.WriteString(msg)
}

// clearTerminal blanks the screen and homes the cursor on exit.
func (e *Editor) clearTerminal() error {
	_, err := e.out.Write([]byte(clearScreen + cursorHome))
	return err
}
