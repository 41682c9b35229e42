// Package buffer holds the editor's in-memory document: an ordered
// sequence of rows, each carrying its raw bytes and a tab-expanded
// render string used for display.
package buffer

// DefaultTabStop is the tab width used when none is configured.
const DefaultTabStop = 4

// Row is one line of the document without its trailing newline.
// render is regenerated from chars on every mutation and is never edited
// directly.
type Row struct {
	chars   []byte
	render  []byte
	tabStop int
}

func newRow(s []byte, tabStop int) Row {
	r := Row{chars: append([]byte(nil), s...), tabStop: tabStop}
	r.update()
	return r
}

// Chars returns the row content. The slice must not be modified.
func (r *Row) Chars() []byte { return r.chars }

// Render returns the tab-expanded display bytes. The slice must not be modified.
func (r *Row) Render() []byte { return r.render }

func (r *Row) Len() int { return len(r.chars) }

func (r *Row) update() {
	tabs := 0
	for _, c := range r.chars {
		if c == '\t' {
			tabs++
		}
	}
	render := r.render[:0]
	if cap(render) < len(r.chars)+tabs*(r.tabStop-1) {
		render = make([]byte, 0, len(r.chars)+tabs*(r.tabStop-1))
	}
	for _, c := range r.chars {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%r.tabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
}

// CxToRx maps a byte offset to its display column.
func (r *Row) CxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(r.chars); j++ {
		if r.chars[j] == '\t' {
			rx += (r.tabStop - 1) - (rx % r.tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx maps a display column back to the byte offset that owns it.
// Columns inside a tab expansion resolve to the tab byte; columns past the
// end of the row resolve to Len.
func (r *Row) RxToCx(rx int) int {
	cur := 0
	for cx, c := range r.chars {
		if c == '\t' {
			cur += (r.tabStop - 1) - (cur % r.tabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(r.chars)
}

func (r *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = append(r.chars, 0)
	copy(r.chars[at+1:], r.chars[at:])
	r.chars[at] = c
	r.update()
}

func (r *Row) deleteChar(at int) bool {
	if at < 0 || at >= len(r.chars) {
		return false
	}
	copy(r.chars[at:], r.chars[at+1:])
	r.chars = r.chars[:len(r.chars)-1]
	r.update()
	return true
}

func (r *Row) appendString(s []byte) {
	r.chars = append(r.chars, s...)
	r.update()
}

func (r *Row) truncate(at int) bool {
	if at < 0 || at >= len(r.chars) {
		return false
	}
	r.chars = r.chars[:at]
	r.update()
	return true
}
