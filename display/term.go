package display

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/bweiss/vcons/console"
)

// TermSink renders cells to an ANSI terminal through termenv. Each
// row write positions the terminal cursor and emits the row's glyphs,
// batching runs that share an attribute into one styled write.
type TermSink struct {
	out           *termenv.Output
	width, height int
}

// NewTermSink wraps w in a sink with the given fixed geometry. The
// 16-color profile is forced so VGA attributes map directly onto the
// ANSI palette regardless of what w is connected to.
func NewTermSink(w io.Writer, width, height int) *TermSink {
	return &TermSink{
		out:    termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI)),
		width:  width,
		height: height,
	}
}

func (s *TermSink) Size() (int, int) {
	return s.width, s.height
}

func (s *TermSink) WriteRow(y int, cells []console.Cell) {
	if y < 0 || y >= s.height {
		return
	}
	if len(cells) > s.width {
		cells = cells[:s.width]
	}

	s.out.MoveCursor(y+1, 1)

	for i := 0; i < len(cells); {
		attr := cells[i].Attr
		j := i
		for j < len(cells) && cells[j].Attr == attr {
			j++
		}

		run := make([]byte, j-i)
		for k := i; k < j; k++ {
			run[k-i] = cells[k].Char
		}

		styled := s.out.String(string(run)).
			Foreground(termenv.ANSIColor(vgaToANSI[attr.Foreground()])).
			Background(termenv.ANSIColor(vgaToANSI[attr.Background()]))
		io.WriteString(s.out, styled.String())

		i = j
	}
}

func (s *TermSink) MoveCursor(x, y int) {
	s.out.MoveCursor(y+1, x+1)
}

func (s *TermSink) EnableCursor() {
	s.out.ShowCursor()
}
