package console

import (
	"slices"
	"testing"
)

func TestWriteGlyphsAndControls(t *testing.T) {
	cases := []struct {
		in           string
		wantX, wantY int
		wantRow0     string
	}{
		{"", 0, 0, "    "},
		{"a", 1, 0, "a   "},
		{"ab", 2, 0, "ab  "},
		{"a\rb", 1, 0, "b   "},
		{"ab\ncd", 2, 1, "ab  "},
		// Wrap at the right edge: the fifth glyph starts row 1.
		{"abcde", 1, 1, "abcd"},
	}

	for i, tc := range cases {
		r, sink := testRegistry(t, 1, testGeom)
		cur := r.Active()

		r.Write([]byte(tc.in), cur)

		if x, y := cur.CursorPosition(); x != tc.wantX || y != tc.wantY {
			t.Errorf("%d: cursor: Got (%d, %d), wanted (%d, %d)", i, x, y, tc.wantX, tc.wantY)
		}
		if got := sink.rowString(0); got != tc.wantRow0 {
			t.Errorf("%d: row 0: Got %q, wanted %q", i, got, tc.wantRow0)
		}
		if !cur.invariantsOK() {
			t.Errorf("%d: invariants violated", i)
		}
	}
}

func TestWriteNoops(t *testing.T) {
	r, sink := testRegistry(t, 1, testGeom)

	writes := sink.rowWrites
	r.Write(nil, r.Active())
	r.Write([]byte{}, r.Active())
	r.Write([]byte("hello"), nil)

	if sink.rowWrites != writes {
		t.Errorf("no-op writes repainted: %d row writes, wanted %d", sink.rowWrites, writes)
	}
	if x, y := r.Active().CursorPosition(); x != 0 || y != 0 {
		t.Errorf("cursor moved by a no-op write: (%d, %d)", x, y)
	}
}

func TestWriteUsesCurrentAttr(t *testing.T) {
	r, _ := testRegistry(t, 1, testGeom)
	cur := r.Active()

	cur.SetForeground(LightGreen)
	cur.SetBackground(Blue)
	r.Write([]byte("x"), cur)

	want := Cell{Char: 'x', Attr: MakeAttr(LightGreen, Blue)}
	if got := cur.Cell(0, 0); got != want {
		t.Errorf("Got %v, wanted %v", got, want)
	}
}

func TestBackspaceBeepsOnly(t *testing.T) {
	sink := newFakeSink(testGeom.Width, testGeom.Height)
	bell := &fakeBeeper{}
	r, err := NewRegistry(1, testGeom, sink, bell, nil, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	cur := r.Active()

	r.Write([]byte("ab\b"), cur)

	if bell.beeps != 1 {
		t.Errorf("beeps: Got %d, wanted 1", bell.beeps)
	}
	if bell.freq != BellFrequency || bell.dur != BellDuration {
		t.Errorf("bell parameters: Got (%d, %v)", bell.freq, bell.dur)
	}
	// The backspace byte has no buffer or cursor effect; erasing is
	// the line editor's job.
	if x, y := cur.CursorPosition(); x != 2 || y != 0 {
		t.Errorf("cursor: Got (%d, %d), wanted (2, 0)", x, y)
	}
	if got := sink.rowString(0); got != "ab  " {
		t.Errorf("row 0: Got %q, wanted %q", got, "ab  ")
	}
}

func TestTabStops(t *testing.T) {
	geom := Geometry{Width: 80, Height: 25, HistoryLines: 200}
	cases := []struct {
		startX, wantX, wantY int
	}{
		{0, 8, 0},
		{7, 8, 0},
		{8, 16, 0},
		// A tab near the right edge runs past the width and wraps
		// onto the next row.
		{75, 0, 1},
	}

	for i, tc := range cases {
		r, _ := testRegistry(t, 1, geom)
		cur := r.Active()
		cur.CursorForward(tc.startX, 0)

		r.Write([]byte{'\t'}, cur)

		if x, y := cur.CursorPosition(); x != tc.wantX || y != tc.wantY {
			t.Errorf("%d: Got (%d, %d), wanted (%d, %d)", i, x, y, tc.wantX, tc.wantY)
		}
	}
}

// TestWriteScenario is the 80x25x200 walkthrough: "A\n\r" from a
// fresh console leaves 'A' at the origin with the default attribute
// and the cursor at the start of row 1 without scrolling.
func TestWriteScenario(t *testing.T) {
	r, _ := testRegistry(t, 1, Geometry{Width: 80, Height: 25, HistoryLines: 200})
	cur := r.Active()

	r.Write([]byte("A\n\r"), cur)

	want := Cell{Char: 'A', Attr: DefaultAttr}
	if got := cur.Cell(0, 0); got != want {
		t.Errorf("cell (0,0): Got %v, wanted %v", got, want)
	}
	if x, y := cur.CursorPosition(); x != 0 || y != 1 {
		t.Errorf("cursor: Got (%d, %d), wanted (0, 1)", x, y)
	}
	if got := cur.ScreenY(); got != 0 {
		t.Errorf("screenY: Got %d, wanted 0", got)
	}
}

func TestScrollAndEvict(t *testing.T) {
	r, sink := testRegistry(t, 1, testGeom)
	cur := r.Active()

	// Five two-glyph rows through a four-row history: the first row
	// is evicted, the screen offset pins at HistoryLines-Height and
	// the bottom viewport row is the last row written.
	r.Write([]byte("ab\ncd\nef\ngh\nij"), cur)

	if got, want := cur.ScreenY(), testGeom.HistoryLines-testGeom.Height; got != want {
		t.Errorf("screenY: Got %d, wanted %d", got, want)
	}
	if got := sink.rowString(0); got != "gh  " {
		t.Errorf("viewport row 0: Got %q, wanted %q", got, "gh  ")
	}
	if got := sink.rowString(1); got != "ij  " {
		t.Errorf("viewport row 1: Got %q, wanted %q", got, "ij  ")
	}

	// The oldest row is gone: history now starts at "cd".
	if got := cur.hist.row(0)[0].Char; got != 'c' {
		t.Errorf("history row 0: Got %q, wanted 'c'", got)
	}
	if !cur.invariantsOK() {
		t.Error("invariants violated")
	}
}

func TestFreezeSuppressesRepaint(t *testing.T) {
	r, sink := testRegistry(t, 1, testGeom)
	cur := r.Active()

	cur.SetFreeze(true)
	writes := sink.rowWrites
	r.Write([]byte("hi"), cur)

	if sink.rowWrites != writes {
		t.Errorf("frozen write repainted: %d row writes, wanted %d", sink.rowWrites, writes)
	}
	if got := sink.rowString(0); got != "    " {
		t.Errorf("sink row 0 while frozen: Got %q, wanted blanks", got)
	}

	// The buffer mutates regardless.
	if got := cur.Cell(0, 0).Char; got != 'h' {
		t.Errorf("buffer cell: Got %q, wanted 'h'", got)
	}

	// Unfreezing and redrawing catches the display up.
	cur.SetFreeze(false)
	r.Redraw(cur)
	if got := sink.rowString(0); got != "hi  " {
		t.Errorf("after catch-up: Got %q, wanted %q", got, "hi  ")
	}
}

type fakeEsc struct {
	calls   [][]byte
	consume int
}

func (f *fakeEsc) Handle(c *Console, rest []byte) int {
	f.calls = append(f.calls, slices.Clone(rest))
	return f.consume
}

func TestEscapeHandoff(t *testing.T) {
	sink := newFakeSink(testGeom.Width, testGeom.Height)
	esc := &fakeEsc{consume: 3}
	r, err := NewRegistry(1, testGeom, sink, nil, nil, esc)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	cur := r.Active()

	r.Write([]byte("a\x1b[mb"), cur)

	if len(esc.calls) != 1 {
		t.Fatalf("handler calls: Got %d, wanted 1", len(esc.calls))
	}
	if got, want := string(esc.calls[0]), "\x1b[mb"; got != want {
		t.Errorf("handler buffer: Got %q, wanted %q", got, want)
	}

	// Three bytes consumed by the handler, so 'b' lands right after
	// 'a'.
	if got := sink.rowString(0); got != "ab  " {
		t.Errorf("row 0: Got %q, wanted %q", got, "ab  ")
	}
}

func TestEscapeHandoffClamped(t *testing.T) {
	cases := []struct {
		consume  int
		wantRow0 string
	}{
		// A handler that claims zero consumption must still advance
		// past the marker.
		{0, "b   "},
		{-4, "b   "},
		// A handler claiming more than it was given is clamped to
		// the buffer end.
		{99, "    "},
	}

	for i, tc := range cases {
		sink := newFakeSink(testGeom.Width, testGeom.Height)
		r, err := NewRegistry(1, testGeom, sink, nil, nil, &fakeEsc{consume: tc.consume})
		if err != nil {
			t.Fatalf("%d: NewRegistry: %v", i, err)
		}

		r.Write([]byte("\x1bb"), r.Active())
		if got := sink.rowString(0); got != tc.wantRow0 {
			t.Errorf("%d: row 0: Got %q, wanted %q", i, got, tc.wantRow0)
		}
	}
}

func TestNilEscapeHandlerSkipsMarker(t *testing.T) {
	r, sink := testRegistry(t, 1, testGeom)

	r.Write([]byte("\x1bZa"), r.Active())

	// Escape consumed, 'Z' and 'a' written as plain glyphs.
	if got := sink.rowString(0); got != "Za  " {
		t.Errorf("row 0: Got %q, wanted %q", got, "Za  ")
	}
}
