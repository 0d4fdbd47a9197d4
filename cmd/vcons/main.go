// Command vcons hosts virtual consoles in a regular terminal. By
// default it runs a shell under a pty, feeds the shell's output
// through the console engine and renders the active console with
// tcell; F-keys switch consoles and ctrl-q/w/s drive the console
// command set. With -replay it instead plays a recorded byte stream
// through a single console and prints the final viewport.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/bweiss/vcons/ansi"
	"github.com/bweiss/vcons/console"
	"github.com/bweiss/vcons/display"
	"github.com/bweiss/vcons/keyboard"
	"github.com/bweiss/vcons/logging"
	"github.com/bweiss/vcons/tone"
)

var (
	replay   = flag.String("replay", "", "If set, play this byte stream through a console and print the final viewport instead of running interactively.")
	history  = flag.Int("history", 200, "Scrollback capacity in lines.")
	consoles = flag.Int("consoles", 4, "Number of virtual consoles.")
	audible  = flag.Bool("bell", false, "If true, play the terminal bell through the host audio device.")
	logfile  = flag.String("logfile", "", "If set, logs will be written to this file.")
)

func main() {
	flag.Parse()

	if err := logging.Setup(*logfile, slog.LevelDebug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var err error
	if *replay != "" {
		err = runReplay(*replay)
	} else {
		err = runInteractive()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReplay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read replay file: %v", err)
	}

	geom := console.VGAText
	if *history > geom.Height {
		geom.HistoryLines = *history
	}

	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && (w < geom.Width || h < geom.Height) {
			fmt.Fprintf(os.Stderr, "terminal is %dx%d, viewport is %dx%d; output will be mangled\n", w, h, geom.Width, geom.Height)
		}
	}

	sink := display.NewTermSink(os.Stdout, geom.Width, geom.Height)
	reg, err := console.NewRegistry(1, geom, sink, tone.Null{}, nil, ansi.New())
	if err != nil {
		return err
	}

	// Freeze while the stream plays so the viewport is emitted once,
	// at the end, instead of once per byte.
	cur := reg.Active()
	cur.SetFreeze(true)
	reg.Write(data, cur)
	cur.SetFreeze(false)
	reg.Redraw(cur)

	return nil
}

func runInteractive() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("couldn't open a screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("couldn't init the screen: %v", err)
	}
	defer screen.Fini()

	sink := display.NewScreen(screen)
	w, h := sink.Size()
	geom := console.Geometry{Width: w, Height: h, HistoryLines: *history}
	if geom.HistoryLines <= h {
		geom.HistoryLines = h * 8
	}

	var bell console.Beeper = tone.Null{}
	if *audible {
		sp := tone.NewSpeaker()
		if err := sp.Init(); err != nil {
			slog.Warn("audio unavailable, bell disabled", "err", err)
		} else {
			bell = sp
		}
	}

	kbd := keyboard.NewKeymap()
	reg, err := console.NewRegistry(*consoles, geom, sink, bell, kbd, ansi.New())
	if err != nil {
		return err
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(geom.Height), Cols: uint16(geom.Width)})
	if err != nil {
		return fmt.Errorf("couldn't start %q under a pty: %v", shell, err)
	}
	defer ptmx.Close()

	// The console core is single-threaded, so every registry call must
	// happen on this goroutine. The pty reader only ships chunks over a
	// channel; writes, key handling and switching all run in the select
	// loop below.
	output := make(chan []byte, 16)
	go pump(ptmx, output)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case chunk, ok := <-output:
			if !ok {
				cmd.Wait()
				return nil
			}
			reg.Write(chunk, reg.Active())
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape {
					cmd.Process.Kill()
					cmd.Wait()
					return nil
				}
				handleKey(reg, kbd, ptmx, ev)
			}
		}
	}
}

// pump copies reads from r onto out until r fails, then closes out.
// Each chunk is freshly allocated so the receiver owns it.
func pump(r io.Reader, out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			return
		}
	}
}

// handleKey routes one key event: console commands and console
// switching are handled locally, everything else goes to the shell
// through the pty.
func handleKey(reg *console.Registry, kbd *keyboard.Keymap, ptmx io.Writer, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlW, tcell.KeyCtrlS:
		kbd.SetCtrl(true)
		reg.OnKey(commandCode(ev.Key()))
		kbd.SetCtrl(false)
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4:
		i := int(ev.Key() - tcell.KeyF1)
		if err := reg.SwitchTo(i); err != nil {
			slog.Debug("switch refused", "console", i, "err", err)
			return
		}
		// Switching only reroutes; the new console must be painted
		// explicitly.
		reg.Redraw(reg.Active())
	case tcell.KeyEnter:
		ptmx.Write([]byte{'\r'})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ptmx.Write([]byte{0x7f})
	case tcell.KeyTab:
		ptmx.Write([]byte{'\t'})
	case tcell.KeyRune:
		r := ev.Rune()
		if r < 0x80 {
			ptmx.Write([]byte{byte(r)})
		}
	default:
		if r := ev.Rune(); r != 0 && r < 0x80 {
			ptmx.Write([]byte{byte(r)})
		}
	}
}

func commandCode(k tcell.Key) console.KeyCode {
	switch k {
	case tcell.KeyCtrlQ:
		return console.KeyQ
	case tcell.KeyCtrlW:
		return console.KeyW
	default:
		return console.KeyS
	}
}
