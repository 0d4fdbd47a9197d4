package console

import (
	"errors"
	"fmt"
	"log/slog"
)

// Registry owns a fixed set of independent consoles and the notion of
// which one is active. The active console is the only one that may
// touch the display sink; switching changes input and render routing
// only and does not repaint the newly active console (callers that
// want it visible follow up with Redraw).
type Registry struct {
	geom     Geometry
	consoles []*Console
	active   int

	sink Sink
	bell Beeper
	kbd  Keyboard
	esc  EscapeHandler
}

// NewRegistry allocates n blank consoles over the given sink, makes
// console 0 active, enables the hardware cursor and clears the active
// console. The bell, keyboard and escape handler may be nil, in which
// case backspace is silent, the input hooks are inert and escape
// markers are skipped without interpretation.
func NewRegistry(n int, geom Geometry, sink Sink, bell Beeper, kbd Keyboard, esc EscapeHandler) (*Registry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid console count %d", n)
	}
	if !geom.valid() {
		return nil, fmt.Errorf("invalid geometry %dx%d with %d history lines", geom.Width, geom.Height, geom.HistoryLines)
	}
	if sink == nil {
		return nil, errors.New("nil display sink")
	}
	if sw, sh := sink.Size(); sw < geom.Width || sh < geom.Height {
		return nil, fmt.Errorf("sink %dx%d smaller than %dx%d viewport", sw, sh, geom.Width, geom.Height)
	}

	r := &Registry{
		geom:     geom,
		consoles: make([]*Console, 0, n),
		sink:     sink,
		bell:     bell,
		kbd:      kbd,
		esc:      esc,
	}
	for i := 0; i < n; i++ {
		r.consoles = append(r.consoles, newConsole(geom))
	}

	r.sink.EnableCursor()
	r.Clear(r.consoles[0])

	return r, nil
}

// Count returns the number of consoles in the registry.
func (r *Registry) Count() int {
	return len(r.consoles)
}

// Console returns console i, or nil when i is out of range.
func (r *Registry) Console(i int) *Console {
	if i < 0 || i >= len(r.consoles) {
		return nil
	}
	return r.consoles[i]
}

// Active returns the currently active console.
func (r *Registry) Active() *Console {
	return r.consoles[r.active]
}

// ActiveIndex returns the index of the currently active console.
func (r *Registry) ActiveIndex() int {
	return r.active
}

// SwitchTo makes console i the active one. Each console's state is
// independent and fully preserved across switches. The display is not
// repainted; call Redraw to make the switch visible.
func (r *Registry) SwitchTo(i int) error {
	if i < 0 || i >= len(r.consoles) {
		return fmt.Errorf("no console %d (have %d)", i, len(r.consoles))
	}

	slog.Debug("switching console", "from", r.active, "to", i)
	r.active = i
	return nil
}

// Redraw forces a full repaint of c, bypassing its freeze flag. It
// does nothing when c is not the active console.
func (r *Registry) Redraw(c *Console) {
	if c == nil || c != r.Active() {
		return
	}

	r.paint(c)
	r.sink.MoveCursor(c.cursorX, c.cursorY)
}

// draw pushes c's viewport to the sink after a mutation. A frozen
// console skips the cell repaint, but the hardware cursor still
// tracks the buffer position. Inactive consoles never reach the
// hardware.
func (r *Registry) draw(c *Console) {
	if c == nil || c != r.Active() {
		return
	}

	if !c.frozen {
		r.paint(c)
	}
	r.sink.MoveCursor(c.cursorX, c.cursorY)
}

// paint copies the visible history rows to the sink. Should the
// viewport range run past the end of history, only the rows that fit
// are copied; fixPos keeps that from ever happening.
func (r *Registry) paint(c *Console) {
	rows := c.geom.Height
	if over := c.screenY + rows - c.geom.HistoryLines; over > 0 {
		rows -= over
	}

	for y := 0; y < rows; y++ {
		r.sink.WriteRow(y, c.hist.row(c.screenY+y))
	}
}

// Clear blanks c's entire history, homes the cursor and repaints.
func (r *Registry) Clear(c *Console) {
	if c == nil {
		return
	}

	c.Clear()
	r.Redraw(c)
}

// Write plays a byte stream through c: control bytes and printable
// glyphs mutate the buffer directly, escape markers hand off to the
// escape handler. The cursor is normalized after every byte and the
// display updated after every byte unless c is frozen. Write is a
// no-op on a nil console or an empty buffer.
func (r *Registry) Write(p []byte, c *Console) {
	if len(p) == 0 || c == nil {
		return
	}

	for i := 0; i < len(p); {
		if p[i] == Escape {
			i += r.handleEscape(c, p[i:])
		} else {
			r.putByte(c, p[i])
			i++
		}

		c.fixPos()
		r.draw(c)
	}
}

// handleEscape hands the remaining bytes to the escape handler and
// returns how far to advance, clamped so a misbehaving handler can
// neither stall the pipeline nor run it past the buffer.
func (r *Registry) handleEscape(c *Console, rest []byte) int {
	if r.esc == nil {
		return 1
	}

	n := r.esc.Handle(c, rest)
	switch {
	case n < 1:
		n = 1
	case n > len(rest):
		n = len(rest)
	}
	return n
}

// putByte applies one non-escape byte to the console buffer.
func (r *Registry) putByte(c *Console, b byte) {
	switch b {
	case '\b':
		if r.bell != nil {
			r.bell.Beep(BellFrequency, BellDuration)
		}
	case '\t':
		c.CursorForward(tabAdvance(c.cursorX), 0)
	case '\n':
		c.newline()
	case '\r':
		c.carriageReturn()
	default:
		c.hist.set(c.hist.index(c.screenY, c.cursorX, c.cursorY), Cell{Char: b, Attr: c.color})
		c.CursorForward(1, 0)
	}

	c.fixPos()
}

// Erase removes up to count trailing characters from c's current
// input line: the cursor backs up, the freed cells are blanked and
// the display repainted unless frozen. The count is clamped to what
// was actually typed; erasing with nothing typed is a no-op. Tabs in
// the erased span are erased as single cells.
func (r *Registry) Erase(c *Console, count int) {
	if c == nil || count <= 0 || c.promptedChars == 0 {
		return
	}
	if count > c.promptedChars {
		count = c.promptedChars
	}

	c.CursorBackward(count, 0)

	begin := c.hist.index(c.screenY, c.cursorX, c.cursorY)
	c.hist.clearCells(begin, begin+count)

	if !c.frozen {
		r.draw(c)
	}
	c.promptedChars -= count
}

// OnKey handles a plain key press routed to the active console. With
// the control modifier held the press is treated as a console
// command instead (see OnCtrl).
func (r *Registry) OnKey(code KeyCode) {
	if r.kbd == nil {
		return
	}
	if r.kbd.IsCtrlEnabled() {
		r.OnCtrl(code)
		return
	}

	cur := r.Active()
	ch := r.kbd.CharFor(code, r.kbd.IsShiftEnabled())
	if ch == 0 {
		slog.Debug("unmapped key", "code", code)
		return
	}

	r.putByte(cur, ch)
	r.draw(cur)

	if ch == '\n' {
		cur.promptedChars = 0
	} else {
		cur.promptedChars++
	}
}

// OnCtrl handles the control-modifier command set on the active
// console: Q resumes repaints and catches the display up, W erases
// the whole current input line, S pauses repaints. Unrecognized
// codes are ignored.
func (r *Registry) OnCtrl(code KeyCode) {
	cur := r.Active()

	switch code {
	case KeyQ:
		cur.frozen = false
		r.Redraw(cur)
	case KeyW:
		r.Erase(cur, cur.promptedChars)
	case KeyS:
		cur.frozen = true
	default:
		slog.Debug("unhandled console command", "code", code)
	}
}

// OnErase erases exactly one character from the active console.
func (r *Registry) OnErase() {
	r.Erase(r.Active(), 1)
}
