package console

// TabWidth is the fixed distance between tab stops.
const TabWidth = 8

// tabAdvance returns how many columns a tab at column x moves the
// cursor to reach the next tab stop.
func tabAdvance(x int) int {
	return TabWidth - x%TabWidth
}

// fixPos restores the cursor and screen invariants after a relative
// move, scrolling the viewport and evicting the oldest history rows
// when scrollback capacity runs out. The step order and the wrap
// formulas replicate the original VGA console arithmetic, including
// its behavior at exact-multiple-of-width boundaries; the package
// tests pin those boundaries down. fixPos is idempotent on state
// that already satisfies the invariants.
func (c *Console) fixPos() {
	w, h := c.geom.Width, c.geom.Height

	if c.cursorX < 0 {
		p := -c.cursorX
		c.cursorX = w - p%w
		c.cursorY += p/w - 1
	}

	if c.cursorX >= w {
		p := c.cursorX
		c.cursorX = p % w
		c.cursorY += p / w
	}

	if c.cursorY < 0 {
		c.screenY -= c.cursorY - h + 1
		c.cursorY = 0
	}

	if c.cursorY >= h {
		c.screenY += c.cursorY - h + 1
		c.cursorY = h - 1
	}

	if c.screenY < 0 {
		c.screenY = 0
	}

	if c.screenY+h >= c.geom.HistoryLines {
		drop := c.screenY + h - c.geom.HistoryLines
		c.hist.shiftUp(drop)
		c.screenY = c.geom.HistoryLines - h
	}
}

// CursorForward moves the cursor right by dx columns and down by dy
// rows, then normalizes.
func (c *Console) CursorForward(dx, dy int) {
	c.cursorX += dx
	c.cursorY += dy
	c.fixPos()
}

// CursorBackward moves the cursor left by dx columns and up by dy
// rows, then normalizes.
func (c *Console) CursorBackward(dx, dy int) {
	c.cursorX -= dx
	c.cursorY -= dy
	c.fixPos()
}

// newline moves the cursor to the start of the next row.
func (c *Console) newline() {
	c.cursorX = 0
	c.cursorY++
	c.fixPos()
}

// carriageReturn moves the cursor to the start of the current row.
// The cursor cannot leave the viewport this way, so no normalization
// is needed.
func (c *Console) carriageReturn() {
	c.cursorX = 0
}
