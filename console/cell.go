package console

import "fmt"

// Color is a VGA text-mode palette index. The low three bits select
// the base color and the fourth bit the bright variant.
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

// Attr packs a foreground color in the low nibble and a background
// color in the high nibble, matching the VGA attribute byte.
type Attr uint8

// DefaultAttr is light grey on black, the attribute every console
// starts with and the one blank cells carry.
const DefaultAttr = Attr(LightGrey)

func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&0x0f) | Attr(bg&0x0f)<<4
}

func (a Attr) Foreground() Color {
	return Color(a & 0x0f)
}

func (a Attr) Background() Color {
	return Color(a >> 4)
}

func (a Attr) WithForeground(c Color) Attr {
	return a&0xf0 | Attr(c&0x0f)
}

func (a Attr) WithBackground(c Color) Attr {
	return a&0x0f | Attr(c&0x0f)<<4
}

// Cell is one display unit: a byte-sized glyph plus its attribute.
type Cell struct {
	Char byte
	Attr Attr
}

// emptyCell is the sentinel a cleared or erased cell holds.
var emptyCell = Cell{Char: ' ', Attr: DefaultAttr}

// EmptyCell returns the blank cell value used for cleared regions.
func EmptyCell() Cell {
	return emptyCell
}

func (c Cell) String() string {
	return fmt.Sprintf("%q (fg %d, bg %d)", c.Char, c.Attr.Foreground(), c.Attr.Background())
}
