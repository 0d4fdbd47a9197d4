package console

// history is the fixed-capacity scrollback arena backing one console:
// lines rows of width cells laid out row-major. The viewport is a
// height-row window into it at some non-negative row offset. The
// arena never grows or shrinks after allocation.
type history struct {
	width, lines int
	cells        []Cell
}

func newHistory(width, lines int) history {
	h := history{
		width: width,
		lines: lines,
		cells: make([]Cell, width*lines),
	}
	h.clearRows(0, lines)
	return h
}

// index maps a viewport-relative cursor position at the given screen
// offset to a cell index.
func (h *history) index(screenY, x, y int) int {
	return (screenY+y)*h.width + x
}

func (h *history) cell(i int) Cell {
	if i < 0 || i >= len(h.cells) {
		return emptyCell
	}
	return h.cells[i]
}

func (h *history) set(i int, c Cell) {
	if i < 0 || i >= len(h.cells) {
		return
	}
	h.cells[i] = c
}

// clearCells blanks the half-open cell range [from, to), clamped to
// the arena bounds.
func (h *history) clearCells(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(h.cells) {
		to = len(h.cells)
	}
	for i := from; i < to; i++ {
		h.cells[i] = emptyCell
	}
}

// clearRows blanks n full rows starting at row from.
func (h *history) clearRows(from, n int) {
	h.clearCells(from*h.width, (from+n)*h.width)
}

// row returns the cells of one history row, or nil when y is outside
// the arena.
func (h *history) row(y int) []Cell {
	if y < 0 || y >= h.lines {
		return nil
	}
	return h.cells[y*h.width : (y+1)*h.width]
}

// shiftUp discards the topmost n rows, moves the remainder up and
// blanks the rows exposed at the bottom. The discarded rows are gone
// for good.
func (h *history) shiftUp(n int) {
	switch {
	case n <= 0:
		return
	case n >= h.lines:
		h.clearRows(0, h.lines)
		return
	}

	copy(h.cells, h.cells[n*h.width:])
	h.clearRows(h.lines-n, n)
}
