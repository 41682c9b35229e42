package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func seedDocument(lines ...string) *Document {
	d := New(DefaultTabStop)
	bs := make([][]byte, len(lines))
	for i, ln := range lines {
		bs[i] = []byte(ln)
	}
	d.Load(bs)
	return d
}

func TestRenderExpandsTabs(t *testing.T) {
	d := seedDocument("ab\tc", "def")
	r := d.Row(0)
	require.Equal(t, "ab  c", string(r.Render()))
	require.Equal(t, 4, r.CxToRx(3))
	require.Equal(t, 2, r.CxToRx(2))
	require.Equal(t, "def", string(d.Row(1).Render()))

	d = seedDocument("\tx\t")
	assert.Equal(t, "    x   ", string(d.Row(0).Render()))
}

func TestRxToCxResolvesInsideTab(t *testing.T) {
	d := seedDocument("ab\tc")
	r := d.Row(0)
	// Columns 2 and 3 are both the tab's expansion.
	assert.Equal(t, 2, r.RxToCx(2))
	assert.Equal(t, 2, r.RxToCx(3))
	assert.Equal(t, 3, r.RxToCx(4))
	assert.Equal(t, 4, r.RxToCx(5))
	assert.Equal(t, 4, r.RxToCx(100))
}

func TestInsertRowClampsAndMarksDirty(t *testing.T) {
	d := seedDocument("b")
	require.False(t, d.Dirty())

	d.InsertRow(-5, []byte("a"))
	d.InsertRow(99, []byte("c"))
	require.Equal(t, "a\nb\nc\n", string(d.Bytes()))
	require.Equal(t, 2, d.DirtyCount())
}

func TestInsertRowCopiesInput(t *testing.T) {
	d := New(0)
	src := []byte("xyz")
	d.InsertRow(0, src)
	src[0] = 'Q'
	require.Equal(t, "xyz", string(d.Row(0).Chars()))
	require.Equal(t, DefaultTabStop, d.TabStop())
}

func TestDeleteRowOutOfRangeIsNoop(t *testing.T) {
	d := seedDocument("a", "b")
	d.DeleteRow(2)
	d.DeleteRow(-1)
	require.Equal(t, 2, d.NumRows())
	require.False(t, d.Dirty())

	d.DeleteRow(0)
	require.Equal(t, "b\n", string(d.Bytes()))
	require.True(t, d.Dirty())
}

func TestRowEdits(t *testing.T) {
	d := seedDocument("hello")
	d.RowInsertChar(0, 0, '>')
	d.RowInsertChar(0, 99, '!')
	require.Equal(t, ">hello!", string(d.Row(0).Chars()))

	d.RowDeleteChar(0, 0)
	d.RowDeleteChar(0, 42)
	require.Equal(t, "hello!", string(d.Row(0).Chars()))

	d.RowAppendString(0, []byte("\tx"))
	require.Equal(t, "hello!\tx", string(d.Row(0).Chars()))
	require.Equal(t, "hello!  x", string(d.Row(0).Render()))

	d.RowTruncate(0, 5)
	require.Equal(t, "hello", string(d.Row(0).Chars()))
	require.Equal(t, "hello", string(d.Row(0).Render()))

	// Edits on the virtual past-end row are ignored.
	before := d.DirtyCount()
	d.RowInsertChar(1, 0, 'x')
	d.RowAppendString(1, []byte("x"))
	require.Equal(t, before, d.DirtyCount())
}

func TestBytesEmptyDocument(t *testing.T) {
	require.Empty(t, New(4).Bytes())
	require.Equal(t, "\n", string(seedDocument("").Bytes()))
}

func TestFindMatchesRender(t *testing.T) {
	d := seedDocument("alpha", "beta", "\tgamma")
	y, rx, ok := d.Find([]byte("gam"))
	require.True(t, ok)
	require.Equal(t, 2, y)
	require.Equal(t, 4, rx)
	require.Equal(t, 1, d.Row(y).RxToCx(rx))

	_, _, ok = d.Find([]byte("zeta"))
	require.False(t, ok)
	_, _, ok = d.Find(nil)
	require.False(t, ok)
}

func TestLoadResetsDirty(t *testing.T) {
	d := New(4)
	d.InsertRow(0, []byte("x"))
	d.Load([][]byte{[]byte("y")})
	require.False(t, d.Dirty())
	require.Equal(t, "x\ny\n", string(d.Bytes()))
}

func TestProperty_RenderIsPureFunctionOfChars(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tab := rapid.IntRange(1, 8).Draw(rt, "tab")
		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 0, 40).Draw(rt, "ops")
		d := New(tab)
		d.InsertRow(0, nil)
		for i, op := range ops {
			r := d.Row(0)
			at := rapid.IntRange(0, r.Len()).Draw(rt, "at")
			switch op {
			case 0:
				d.RowInsertChar(0, at, rapid.SampledFrom([]byte{'a', '\t', ' '}).Draw(rt, "c"))
			case 1:
				d.RowDeleteChar(0, at)
			case 2:
				d.RowAppendString(0, []byte{'\t', byte('0' + i%10)})
			}
			fresh := newRow(d.Row(0).Chars(), tab)
			require.Equal(rt, string(fresh.Render()), string(d.Row(0).Render()))
		}
	})
}

func TestProperty_CxRxRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tab := rapid.IntRange(1, 8).Draw(rt, "tab")
		chars := rapid.SliceOfN(rapid.SampledFrom([]byte{'x', '\t', ' '}), 0, 30).Draw(rt, "chars")
		r := newRow(chars, tab)
		for cx := 0; cx <= r.Len(); cx++ {
			rx := r.CxToRx(cx)
			require.Equal(rt, cx, r.RxToCx(rx), "cx=%d rx=%d", cx, rx)
			require.LessOrEqual(rt, rx, len(r.Render()))
		}
		// Every interior column of a tab expansion resolves to the tab.
		for cx, c := range chars {
			if c != '\t' {
				continue
			}
			start, end := r.CxToRx(cx), r.CxToRx(cx+1)
			for rx := start; rx < end; rx++ {
				require.Equal(rt, cx, r.RxToCx(rx))
			}
		}
	})
}
