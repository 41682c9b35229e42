package buffer

import (
	"bytes"
)

// Document is the ordered sequence of rows plus file metadata.
//
// Valid row indexes are 0..NumRows()-1. The index NumRows() is the virtual
// row past the end of the file; it may hold the cursor but is never stored.
type Document struct {
	rows     []Row
	filename string
	dirty    int
	tabStop  int
}

// New returns an empty, unnamed document. A tabStop below 1 selects
// DefaultTabStop.
func New(tabStop int) *Document {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Document{tabStop: tabStop}
}

func (d *Document) TabStop() int { return d.tabStop }

func (d *Document) NumRows() int { return len(d.rows) }

// Row returns row at, or nil when at is outside the stored rows.
func (d *Document) Row(at int) *Row {
	if at < 0 || at >= len(d.rows) {
		return nil
	}
	return &d.rows[at]
}

// RowLen is the length of row at, or 0 for the virtual past-end row.
func (d *Document) RowLen(at int) int {
	if r := d.Row(at); r != nil {
		return r.Len()
	}
	return 0
}

// Filename is the backing file path; empty means an unsaved new file.
func (d *Document) Filename() string { return d.filename }

func (d *Document) SetFilename(name string) { d.filename = name }

// Dirty reports whether the document changed since it was loaded or saved.
func (d *Document) Dirty() bool { return d.dirty > 0 }

func (d *Document) DirtyCount() int { return d.dirty }

// MarkClean clears the dirty counter after a successful save.
func (d *Document) MarkClean() { d.dirty = 0 }

// Load appends lines as rows and leaves the document clean.
func (d *Document) Load(lines [][]byte) {
	for _, ln := range lines {
		d.rows = append(d.rows, newRow(ln, d.tabStop))
	}
	d.dirty = 0
}

// InsertRow inserts a row holding a copy of s at position at, clamped to
// [0, NumRows()].
func (d *Document) InsertRow(at int, s []byte) {
	at = max(0, min(at, len(d.rows)))
	d.rows = append(d.rows, Row{})
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = newRow(s, d.tabStop)
	d.dirty++
}

// DeleteRow removes row at; out of range indexes are ignored.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = Row{}
	d.rows = d.rows[:len(d.rows)-1]
	d.dirty++
}

// RowInsertChar inserts c into row y at byte offset at. Offsets outside
// the row append at the end.
func (d *Document) RowInsertChar(y, at int, c byte) {
	r := d.Row(y)
	if r == nil {
		return
	}
	r.insertChar(at, c)
	d.dirty++
}

// RowDeleteChar removes the byte at offset at of row y, if there is one.
func (d *Document) RowDeleteChar(y, at int) {
	r := d.Row(y)
	if r == nil {
		return
	}
	if r.deleteChar(at) {
		d.dirty++
	}
}

// RowAppendString appends s to row y.
func (d *Document) RowAppendString(y int, s []byte) {
	r := d.Row(y)
	if r == nil {
		return
	}
	r.appendString(s)
	d.dirty++
}

// RowTruncate cuts row y down to its first at bytes.
func (d *Document) RowTruncate(y, at int) {
	r := d.Row(y)
	if r == nil {
		return
	}
	if r.truncate(at) {
		d.dirty++
	}
}

// Bytes serializes the document with a newline after every row,
// including the last.
func (d *Document) Bytes() []byte {
	n := 0
	for i := range d.rows {
		n += len(d.rows[i].chars) + 1
	}
	var b bytes.Buffer
	b.Grow(n)
	for i := range d.rows {
		b.Write(d.rows[i].chars)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Find returns the first row, in index order, whose render string
// contains query, with the render offset of the match.
func (d *Document) Find(query []byte) (y, rx int, ok bool) {
	if len(query) == 0 {
		return 0, 0, false
	}
	for i := range d.rows {
		if p := bytes.Index(d.rows[i].render, query); p >= 0 {
			return i, p, true
		}
	}
	return 0, 0, false
}
