// Package ansi interprets the escape sequences the console's
// formatting primitives can express: SGR color selection, relative
// cursor moves and display erase. Anything else is consumed and
// dropped so the write pipeline never sees a partial sequence.
package ansi

import (
	"log/slog"

	"github.com/bweiss/vcons/console"
)

const (
	csi       = '['
	maxParams = 16
)

// ansiToVGA maps the standard ANSI palette order onto VGA indices.
var ansiToVGA = [8]console.Color{
	console.Black,
	console.Red,
	console.Green,
	console.Brown,
	console.Blue,
	console.Magenta,
	console.Cyan,
	console.LightGrey,
}

// Handler implements console.EscapeHandler over the CSI subset.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// Handle interprets one escape sequence at the head of rest and
// returns how many bytes it consumed. A sequence cut off by the end
// of the buffer is consumed whole and dropped.
func (h *Handler) Handle(c *console.Console, rest []byte) int {
	params, final, n := scan(rest)
	if final == 0 {
		return n
	}

	dispatch(c, params, final)
	return n
}

// Discard consumes escape sequences without interpreting them.
type Discard struct{}

func (Discard) Handle(_ *console.Console, rest []byte) int {
	_, _, n := scan(rest)
	return n
}

// scan walks one escape sequence: the marker, an optional CSI
// introducer, numeric parameters and a final byte. It returns the
// parsed parameters, the final byte (0 when the sequence was not CSI
// or ran off the buffer) and the byte count consumed.
func scan(rest []byte) (params []int, final byte, n int) {
	if len(rest) < 2 {
		return nil, 0, len(rest)
	}
	if rest[1] != csi {
		// Two-byte escape; nothing here interprets those.
		return nil, 0, 2
	}

	cur, haveCur := 0, false
	for i := 2; i < len(rest); i++ {
		b := rest[i]
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			haveCur = true
		case b == ';':
			params = appendParam(params, cur)
			cur, haveCur = 0, false
		case b >= 0x40 && b <= 0x7e:
			if haveCur {
				params = appendParam(params, cur)
			}
			return params, b, i + 1
		default:
			// Intermediate or malformed byte; keep scanning for a
			// final so the sequence is consumed in one piece.
		}
	}

	return nil, 0, len(rest)
}

func appendParam(params []int, v int) []int {
	if len(params) >= maxParams {
		return params
	}
	return append(params, v)
}

// arg returns parameter i, or def when it is absent.
func arg(params []int, i, def int) int {
	if i >= len(params) {
		return def
	}
	return params[i]
}

func dispatch(c *console.Console, params []int, final byte) {
	switch final {
	case 'm':
		sgr(c, params)
	case 'A':
		c.CursorBackward(0, arg(params, 0, 1))
	case 'B':
		c.CursorForward(0, arg(params, 0, 1))
	case 'C':
		c.CursorForward(arg(params, 0, 1), 0)
	case 'D':
		c.CursorBackward(arg(params, 0, 1), 0)
	case 'J':
		// Only the full-display form is supported.
		if arg(params, 0, 0) == 2 {
			c.Clear()
		}
	default:
		slog.Debug("unhandled CSI final", "final", string(final), "params", params)
	}
}

func sgr(c *console.Console, params []int) {
	if len(params) == 0 {
		c.ResetAttributes()
		return
	}

	for _, p := range params {
		switch {
		case p == 0:
			c.ResetAttributes()
		case p >= 30 && p <= 37:
			c.SetForeground(ansiToVGA[p-30])
		case p == 39:
			c.SetForeground(console.DefaultAttr.Foreground())
		case p >= 40 && p <= 47:
			c.SetBackground(ansiToVGA[p-40])
		case p == 49:
			c.SetBackground(console.DefaultAttr.Background())
		case p >= 90 && p <= 97:
			c.SetForeground(ansiToVGA[p-90] + 8)
		case p >= 100 && p <= 107:
			c.SetBackground(ansiToVGA[p-100] + 8)
		default:
			slog.Debug("unimplemented SGR parameter", "param", p)
		}
	}
}
