package console

import "testing"

func TestAttrPacking(t *testing.T) {
	cases := []struct {
		fg, bg Color
	}{
		{Black, Black},
		{LightGrey, Black},
		{White, Blue},
		{Yellow, LightMagenta},
	}

	for i, c := range cases {
		a := MakeAttr(c.fg, c.bg)
		if got := a.Foreground(); got != c.fg {
			t.Errorf("%d: foreground: Got %d, wanted %d", i, got, c.fg)
		}
		if got := a.Background(); got != c.bg {
			t.Errorf("%d: background: Got %d, wanted %d", i, got, c.bg)
		}
	}
}

func TestAttrWith(t *testing.T) {
	a := DefaultAttr

	if got := a.WithForeground(Red); got != MakeAttr(Red, Black) {
		t.Errorf("WithForeground: Got %v", got)
	}
	if got := a.WithBackground(Green); got != MakeAttr(LightGrey, Green) {
		t.Errorf("WithBackground: Got %v", got)
	}

	// Replacing one half leaves the other alone.
	b := MakeAttr(Yellow, Blue).WithForeground(White)
	if got := b.Background(); got != Blue {
		t.Errorf("background clobbered: Got %d", got)
	}
}

func TestDefaultAttr(t *testing.T) {
	if got := DefaultAttr.Foreground(); got != LightGrey {
		t.Errorf("default foreground: Got %d, wanted %d", got, LightGrey)
	}
	if got := DefaultAttr.Background(); got != Black {
		t.Errorf("default background: Got %d, wanted %d", got, Black)
	}
	if got := EmptyCell(); got.Char != ' ' || got.Attr != DefaultAttr {
		t.Errorf("empty cell: Got %v", got)
	}
}
