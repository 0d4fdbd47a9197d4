package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bweiss/vcons/console"
)

// Screen adapts an initialized tcell screen to the console sink
// interface. The renderer always issues the cursor move last, so the
// frame is flushed there rather than per row.
type Screen struct {
	s             tcell.Screen
	width, height int
}

func NewScreen(s tcell.Screen) *Screen {
	w, h := s.Size()
	return &Screen{s: s, width: w, height: h}
}

func (sc *Screen) Size() (int, int) {
	return sc.width, sc.height
}

func (sc *Screen) WriteRow(y int, cells []console.Cell) {
	if y < 0 || y >= sc.height {
		return
	}

	for x, c := range cells {
		if x >= sc.width {
			break
		}
		sc.s.SetContent(x, y, rune(c.Char), nil, styleFor(c.Attr))
	}
}

func (sc *Screen) MoveCursor(x, y int) {
	sc.s.ShowCursor(x, y)
	sc.s.Show()
}

func (sc *Screen) EnableCursor() {
	sc.s.Show()
}

func styleFor(a console.Attr) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(vgaToANSI[a.Foreground()])).
		Background(tcell.PaletteColor(vgaToANSI[a.Background()]))
}
