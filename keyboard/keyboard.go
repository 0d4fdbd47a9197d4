// Package keyboard provides a US-layout keymap over PS/2 set 1 make
// codes, implementing the console.Keyboard interface. A scancode
// driver feeds modifier transitions through SetShift/SetCtrl and
// routes make codes to the console input hooks.
package keyboard

import "github.com/bweiss/vcons/console"

// Make codes beyond the command set console itself names.
const (
	KeyEscape    console.KeyCode = 0x01
	KeyBackspace console.KeyCode = 0x0e
	KeyTab       console.KeyCode = 0x0f
	KeyEnter     console.KeyCode = 0x1c
	KeySpace     console.KeyCode = 0x39
)

var normal = map[console.KeyCode]byte{
	0x01: 0x1b,
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0a: '9', 0x0b: '0',
	0x0c: '-', 0x0d: '=', 0x0e: '\b', 0x0f: '\t',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1a: '[', 0x1b: ']', 0x1c: '\n',
	0x1e: 'a', 0x1f: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l',
	0x27: ';', 0x28: '\'', 0x29: '`', 0x2b: '\\',
	0x2c: 'z', 0x2d: 'x', 0x2e: 'c', 0x2f: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/',
	0x39: ' ',
}

var shifted = map[console.KeyCode]byte{
	0x01: 0x1b,
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0a: '(', 0x0b: ')',
	0x0c: '_', 0x0d: '+', 0x0e: '\b', 0x0f: '\t',
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T',
	0x15: 'Y', 0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P',
	0x1a: '{', 0x1b: '}', 0x1c: '\n',
	0x1e: 'A', 0x1f: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G',
	0x23: 'H', 0x24: 'J', 0x25: 'K', 0x26: 'L',
	0x27: ':', 0x28: '"', 0x29: '~', 0x2b: '|',
	0x2c: 'Z', 0x2d: 'X', 0x2e: 'C', 0x2f: 'V', 0x30: 'B',
	0x31: 'N', 0x32: 'M', 0x33: '<', 0x34: '>', 0x35: '?',
	0x39: ' ',
}

// Keymap tracks modifier state and translates make codes to
// characters. The zero value is usable; NewKeymap exists for
// symmetry with the rest of the module.
type Keymap struct {
	shift, ctrl bool
}

func NewKeymap() *Keymap {
	return &Keymap{}
}

func (k *Keymap) SetShift(on bool) { k.shift = on }
func (k *Keymap) SetCtrl(on bool)  { k.ctrl = on }

func (k *Keymap) IsShiftEnabled() bool { return k.shift }
func (k *Keymap) IsCtrlEnabled() bool  { return k.ctrl }

// CharFor translates a make code to a character, honoring the shift
// argument rather than the tracked modifier state so callers can
// resolve the two independently. Unmapped codes yield 0.
func (k *Keymap) CharFor(code console.KeyCode, shift bool) byte {
	if shift {
		return shifted[code]
	}
	return normal[code]
}

// Code looks up the make code that produces ch, and whether it needs
// shift. It serves callers that have characters (a pty, a test) and
// need to synthesize key events.
func Code(ch byte) (code console.KeyCode, shift, ok bool) {
	for c, b := range normal {
		if b == ch {
			return c, false, true
		}
	}
	for c, b := range shifted {
		if b == ch {
			return c, true, true
		}
	}
	return 0, false, false
}
