package editor

import (
	"errors"
	"io"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"yate/internal/input"
)

var (
	esc   = input.Named(input.Escape)
	enter = input.ByteKey('\r')
	bs    = input.Named(input.Backspace)
)

func TestInsertCharOnEmptyDocumentCreatesRow(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.press(t, typeString("hi")...)
	require.Equal(t, []string{"hi"}, h.rows())
	require.Equal(t, [2]int{2, 0}, at(h))
	require.True(t, h.ed.doc.Dirty())
}

func TestInsertTabAndHighBytes(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.press(t, input.ByteKey('\t'), input.ByteKey(0xe9), input.ByteKey(input.Ctrl('b')))
	require.Equal(t, []string{"\t\xe9"}, h.rows(), "unbound control bytes are not inserted")
}

func TestInsertNewlineSplitsRow(t *testing.T) {
	h := seedEditor(t, 12, 40, "hello world")
	h.ed.cx = 5
	h.press(t, enter)
	require.Equal(t, []string{"hello", " world"}, h.rows())
	require.Equal(t, [2]int{0, 1}, at(h))
}

func TestInsertNewlineAtRowStartInsertsAbove(t *testing.T) {
	h := seedEditor(t, 12, 40, "abc")
	h.press(t, enter)
	require.Equal(t, []string{"", "abc"}, h.rows())
	require.Equal(t, [2]int{0, 1}, at(h))
}

func TestInsertNewlineAtRowEnd(t *testing.T) {
	h := seedEditor(t, 12, 40, "abc")
	h.ed.cx = 3
	h.press(t, enter)
	require.Equal(t, []string{"abc", ""}, h.rows())
}

func TestDelCharWithinRow(t *testing.T) {
	h := seedEditor(t, 12, 40, "abc")
	h.ed.cx = 2
	h.press(t, bs)
	require.Equal(t, []string{"ac"}, h.rows())
	require.Equal(t, 1, h.ed.cx)

	h.press(t, input.ByteKey(input.Ctrl('h')))
	require.Equal(t, []string{"c"}, h.rows())
}

func TestDelCharMergesRows(t *testing.T) {
	h := seedEditor(t, 12, 40, "ab", "cd", "ef")
	h.ed.cy = 1
	h.press(t, bs)
	require.Equal(t, []string{"abcd", "ef"}, h.rows())
	require.Equal(t, [2]int{2, 0}, at(h))
}

func TestDelCharAtDocumentStartIsNoop(t *testing.T) {
	h := seedEditor(t, 12, 40, "ab", "cd")
	h.press(t, bs)
	require.Equal(t, []string{"ab", "cd"}, h.rows())
	require.Equal(t, [2]int{0, 0}, at(h))
	require.False(t, h.ed.doc.Dirty())
}

func TestDelCharOnVirtualRowIsNoop(t *testing.T) {
	h := seedEditor(t, 12, 40, "ab")
	h.ed.cy = 1
	h.press(t, bs)
	require.Equal(t, []string{"ab"}, h.rows())
	require.Equal(t, [2]int{0, 1}, at(h))
}

func TestDeleteKeyRemovesCharUnderCursor(t *testing.T) {
	h := seedEditor(t, 12, 40, "abc", "d")
	h.ed.cx = 1
	h.press(t, input.Named(input.Delete))
	require.Equal(t, []string{"ac", "d"}, h.rows())
	require.Equal(t, 1, h.ed.cx)

	// At the end of a row Delete joins the next row.
	h.ed.cx = 2
	h.press(t, input.Named(input.Delete))
	require.Equal(t, []string{"acd"}, h.rows())
	require.Equal(t, [2]int{2, 0}, at(h))
}

func TestProperty_InsertDeleteMatchesStringModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := seedEditor(t, 12, 40)
		var model []byte
		inserted := false
		n := rapid.IntRange(0, 60).Draw(rt, "n")
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(rt, "insert") {
				c := rapid.ByteRange(0x20, 0x7e).Draw(rt, "c")
				h.ed.insertChar(c)
				model = append(model, c)
				inserted = true
				continue
			}
			h.ed.delChar()
			if len(model) > 0 {
				model = model[:len(model)-1]
			}
		}
		want := ""
		if inserted {
			want = string(model) + "\n"
		}
		require.Equal(rt, want, string(h.ed.doc.Bytes()))
	})
}

func TestProperty_SplitThenMergeRestoresRow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		before := rapid.SliceOfN(rapid.StringMatching(`[a-z\t ]{0,12}`), 1, 5).Draw(rt, "rows")
		h := seedEditor(t, 12, 40, before...)
		y := rapid.IntRange(0, len(before)-1).Draw(rt, "y")
		cx := rapid.IntRange(0, len(before[y])).Draw(rt, "cx")
		h.ed.cx, h.ed.cy = cx, y

		h.ed.insertNewline()
		require.Equal(rt, len(before)+1, h.ed.doc.NumRows())
		h.ed.delChar()

		require.Equal(rt, before, h.rows())
		require.Equal(rt, [2]int{cx, y}, at(h))
	})
}

func TestSaveWithoutFilenameCancelled(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.press(t, typeString("abc")...)
	dirty := h.ed.doc.DirtyCount()

	h.press(t, keySave, input.ByteKey('x'), esc)
	require.Zero(t, h.saver.calls)
	require.Equal(t, dirty, h.ed.doc.DirtyCount())
	require.Empty(t, h.ed.doc.Filename())
	require.Equal(t, "Save aborted", h.ed.status.Text())
}

func TestSaveAsPromptsForName(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.press(t, typeString("abc")...)

	h.keys.push(keySave)
	h.keys.push(typeString("out.txt")...)
	h.keys.push(enter)
	require.NoError(t, h.ed.ProcessKeypress())
	require.Empty(t, h.keys.keys, "the prompt consumed the name")

	require.Equal(t, 1, h.saver.calls)
	require.Equal(t, "abc\n", h.saver.files["out.txt"])
	require.Equal(t, "out.txt", h.ed.doc.Filename())
	require.False(t, h.ed.doc.Dirty())
	require.Equal(t, "4 bytes written to disk", h.ed.status.Text())
}

func TestSaveNamedDocumentDoesNotPrompt(t *testing.T) {
	h := seedEditor(t, 12, 40, "x", "y")
	h.ed.doc.SetFilename("named.txt")
	h.ed.doc.RowInsertChar(0, 1, 'z')

	h.press(t, keySave)
	require.Equal(t, "xz\ny\n", h.saver.files["named.txt"])
	require.False(t, h.ed.doc.Dirty())
}

type recorder struct{ paths []string }

func (r *recorder) Record(path string) error {
	r.paths = append(r.paths, path)
	return nil
}

func TestSaveRecordsHistory(t *testing.T) {
	h := seedEditor(t, 12, 40, "x")
	rec := &recorder{}
	h.ed.history = rec
	h.ed.doc.SetFilename("kept.txt")
	h.press(t, keySave)
	require.Equal(t, []string{"kept.txt"}, rec.paths)
}

func TestSaveFailureLeavesStateUntouched(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.saver.err = &os.PathError{Op: "open", Path: "ro.txt", Err: syscall.EACCES}
	h.press(t, typeString("data")...)
	dirty := h.ed.doc.DirtyCount()

	h.keys.push(keySave)
	h.keys.push(typeString("ro.txt")...)
	h.keys.push(enter)
	require.NoError(t, h.ed.ProcessKeypress())

	require.Equal(t, 1, h.saver.calls)
	require.Equal(t, dirty, h.ed.doc.DirtyCount())
	require.Empty(t, h.ed.doc.Filename())
	require.Equal(t, "Can't save! I/O error: permission denied", h.ed.status.Text())
}

func TestSavePromptReadErrorPropagates(t *testing.T) {
	h := seedEditor(t, 12, 40, "x")
	h.keys.push(keySave)
	err := h.ed.ProcessKeypress()
	require.ErrorIs(t, err, io.EOF)
}

func TestFindMovesCursorAndScrollsMatchIntoView(t *testing.T) {
	h := seedEditor(t, 12, 40, "alpha", "beta", "xx\tgamma", "delta")
	h.keys.push(keyFind)
	h.keys.push(typeString("gam")...)
	h.keys.push(enter)
	require.NoError(t, h.ed.ProcessKeypress())

	require.Equal(t, [2]int{3, 2}, at(h))
	require.Equal(t, 4, h.ed.rowOff, "row offset forced past the end")
	require.NoError(t, h.ed.Refresh())
	require.Equal(t, 2, h.ed.rowOff)
	require.Equal(t, 4, h.ed.rx)
}

func TestFindNoMatchLeavesCursor(t *testing.T) {
	h := seedEditor(t, 12, 40, "alpha", "beta")
	h.ed.cx, h.ed.cy = 2, 1
	h.keys.push(keyFind)
	h.keys.push(typeString("zz")...)
	h.keys.push(enter)
	require.NoError(t, h.ed.ProcessKeypress())

	require.Equal(t, [2]int{2, 1}, at(h))
	require.Equal(t, `No match for "zz"`, h.ed.status.Text())
}

func TestFindCancelledDoesNotScan(t *testing.T) {
	h := seedEditor(t, 12, 40, "alpha", "beta")
	h.ed.cy = 1
	h.keys.push(keyFind)
	h.keys.push(typeString("alp")...)
	h.keys.push(esc)
	require.NoError(t, h.ed.ProcessKeypress())
	require.Equal(t, [2]int{0, 1}, at(h))
	require.Empty(t, h.ed.status.Text())
}

func TestPromptEditing(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.keys.push(enter) // empty Enter is ignored
	h.keys.push(typeString("ab")...)
	h.keys.push(input.Named(input.ArrowUp), input.Named(input.PageDown), input.ByteKey(input.Ctrl('x')))
	h.keys.push(bs, input.ByteKey('c'), input.Named(input.Delete), input.ByteKey('d'))
	h.keys.push(input.ByteKey(0xe9)) // non-ASCII is not accepted
	h.keys.push(enter)

	got, ok, err := h.ed.prompt("Q: ", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ad", got)
	require.Empty(t, h.ed.status.Text())
}

func TestPromptShowsTextInMessageBar(t *testing.T) {
	h := seedEditor(t, 12, 40)
	h.keys.push(typeString("ab")...)
	h.keys.push(esc)
	_, ok, err := h.ed.prompt("Search: ", " (ESC to cancel)")
	require.NoError(t, err)
	require.False(t, ok)
	require.Contains(t, h.out.String(), "Search: ab (ESC to cancel)")
}

func TestIoErrText(t *testing.T) {
	require.Equal(t, "", ioErrText(nil))
	require.Equal(t, "boom", ioErrText(errors.New("boom")))
	require.Equal(t, "no such file or directory",
		ioErrText(&os.PathError{Op: "open", Path: "x", Err: syscall.ENOENT}))
}
