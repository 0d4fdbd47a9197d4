package console

// Geometry fixes the dimensions of a console: the visible viewport
// and the total scrollback capacity. HistoryLines must exceed Height
// or there is nothing to scroll into.
type Geometry struct {
	Width, Height int
	HistoryLines  int
}

// VGAText is the classic 80x25 text mode with 200 lines of history.
var VGAText = Geometry{Width: 80, Height: 25, HistoryLines: 200}

func (g Geometry) valid() bool {
	return g.Width > 0 && g.Height > 0 && g.HistoryLines > g.Height
}

// Console is one virtual terminal: its scrollback history, cursor and
// write attribute. Cursor coordinates are viewport-relative and may
// transiently leave the viewport between a relative move and fixPos;
// every exported operation returns with the invariants restored.
type Console struct {
	geom Geometry
	hist history

	cursorX, cursorY int
	screenY          int

	color         Attr
	promptedChars int
	frozen        bool
}

func newConsole(geom Geometry) *Console {
	return &Console{
		geom:  geom,
		hist:  newHistory(geom.Width, geom.HistoryLines),
		color: DefaultAttr,
	}
}

func (c *Console) Geometry() Geometry {
	return c.geom
}

// CursorPosition returns the viewport-relative cursor column and row.
func (c *Console) CursorPosition() (x, y int) {
	return c.cursorX, c.cursorY
}

// ScreenY returns the history row currently at the top of the
// viewport.
func (c *Console) ScreenY() int {
	return c.screenY
}

// Cell returns the cell at the viewport-relative position (x, y).
// Positions outside the viewport read as the empty cell.
func (c *Console) Cell(x, y int) Cell {
	if x < 0 || x >= c.geom.Width || y < 0 || y >= c.geom.Height {
		return emptyCell
	}
	return c.hist.cell(c.hist.index(c.screenY, x, y))
}

// CurrentAttr returns the attribute newly written glyphs receive.
func (c *Console) CurrentAttr() Attr {
	return c.color
}

func (c *Console) SetForeground(col Color) {
	c.color = c.color.WithForeground(col)
}

func (c *Console) SetBackground(col Color) {
	c.color = c.color.WithBackground(col)
}

// ResetAttributes restores the default write attribute.
func (c *Console) ResetAttributes() {
	c.color = DefaultAttr
}

// PromptedChars reports how many characters were typed on the current
// input line and not yet erased.
func (c *Console) PromptedChars() int {
	return c.promptedChars
}

func (c *Console) Frozen() bool {
	return c.frozen
}

// SetFreeze pauses (or resumes) display repaints for this console.
// Buffer mutations continue while frozen; a redraw after unfreezing
// catches the display up.
func (c *Console) SetFreeze(on bool) {
	c.frozen = on
}

// Clear resets the console to a blank full-capacity buffer with the
// cursor and screen offset at the origin. The write attribute and
// prompt state are preserved.
func (c *Console) Clear() {
	c.cursorX = 0
	c.cursorY = 0
	c.screenY = 0
	c.hist.clearRows(0, c.geom.HistoryLines)
}
