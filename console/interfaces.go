package console

import "time"

// Escape is the byte that hands the write pipeline off to the escape
// handler.
const Escape = 0x1b

// Bell parameters used when a backspace byte reaches the write
// pipeline.
const (
	BellFrequency = 1000 // Hz
	BellDuration  = 100 * time.Millisecond
)

// Sink is the display hardware as seen by the renderer: a fixed
// geometry grid of cells plus a hardware cursor. The real thing is a
// memory-mapped text buffer; adapters live in the display package.
type Sink interface {
	Size() (width, height int)
	WriteRow(y int, cells []Cell)
	MoveCursor(x, y int)
	EnableCursor()
}

// Beeper produces the terminal bell.
type Beeper interface {
	Beep(freqHz int, d time.Duration)
}

// KeyCode is a keyboard scancode (PS/2 set 1 make codes).
type KeyCode uint8

// The scancodes the control-modifier command set recognizes.
const (
	KeyQ KeyCode = 0x10
	KeyW KeyCode = 0x11
	KeyS KeyCode = 0x1f
)

// Keyboard exposes the modifier state and keymap of whatever keyboard
// driver feeds the input hooks.
type Keyboard interface {
	IsShiftEnabled() bool
	IsCtrlEnabled() bool
	CharFor(code KeyCode, shift bool) byte
}

// EscapeHandler interprets one escape sequence. It receives the
// unconsumed remainder of the write buffer, beginning with the escape
// marker, and returns how many bytes it consumed (at least one, never
// more than it was given). It may mutate the console's attribute and
// cursor state as a side effect.
type EscapeHandler interface {
	Handle(c *Console, rest []byte) int
}
