// Package display provides sinks the console renderer can draw into:
// an in-memory buffer, an ANSI terminal writer and a tcell screen.
package display

import "github.com/bweiss/vcons/console"

// vgaToANSI maps VGA palette indices to the standard ANSI palette
// order shared by termenv and tcell.
var vgaToANSI = [16]int{0, 4, 2, 6, 1, 5, 3, 7, 8, 12, 10, 14, 9, 13, 11, 15}

// Buffer is an in-memory display sink: a plain cell grid plus cursor
// state. It stands in for the memory-mapped text buffer in tests and
// headless embeddings.
type Buffer struct {
	width, height int
	cells         []console.Cell

	cursorX, cursorY int
	cursorOn         bool
}

func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:  width,
		height: height,
		cells:  make([]console.Cell, width*height),
	}
	for i := range b.cells {
		b.cells[i] = console.EmptyCell()
	}
	return b
}

func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) WriteRow(y int, cells []console.Cell) {
	if y < 0 || y >= b.height {
		return
	}

	row := b.cells[y*b.width : (y+1)*b.width]
	copy(row, cells)
}

func (b *Buffer) MoveCursor(x, y int) {
	b.cursorX, b.cursorY = x, y
}

func (b *Buffer) EnableCursor() {
	b.cursorOn = true
}

// Cell returns the cell at (x, y), or the empty cell outside the
// grid.
func (b *Buffer) Cell(x, y int) console.Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return console.EmptyCell()
	}
	return b.cells[y*b.width+x]
}

// Cursor returns the last cursor position the renderer set.
func (b *Buffer) Cursor() (x, y int) {
	return b.cursorX, b.cursorY
}

func (b *Buffer) CursorEnabled() bool {
	return b.cursorOn
}

// RowString renders row y as the string of glyphs it holds.
func (b *Buffer) RowString(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}

	out := make([]byte, b.width)
	for x := 0; x < b.width; x++ {
		out[x] = b.cells[y*b.width+x].Char
	}
	return string(out)
}
