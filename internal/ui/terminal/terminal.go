// Package terminal implements internal/ui.UI against a real terminal: plain
// stdout writes for output, and a background goroutine scanning stdin so
// PollInput/PollSingleKey never block the caller's fixed-rate loop.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mazenet/mazenet/internal/color"
)

// UI is a bufio.Scanner-based terminal adapter: good enough to drive the
// client interactively, with no curses/raw-mode dependency.
type UI struct {
	out io.Writer

	mu      sync.Mutex
	lines   []string
	keys    []string
	scanErr error
}

// New starts scanning os.Stdin in the background and returns a UI that
// writes to os.Stdout.
func New() *UI {
	u := &UI{out: os.Stdout}
	go u.scan(os.Stdin)
	return u
}

// scan reads stdin line by line for the lifetime of the process, feeding
// both PollInput (full lines) and PollSingleKey (the first rune of each
// line): a real single-keystroke read needs raw terminal mode, which this
// package deliberately skips, per spec.md's non-goal on a rendered client.
func (u *UI) scan(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		u.mu.Lock()
		u.lines = append(u.lines, line)
		if len(line) > 0 {
			u.keys = append(u.keys, line[:1])
		}
		u.mu.Unlock()
	}
	u.mu.Lock()
	u.scanErr = scanner.Err()
	if u.scanErr == nil {
		u.scanErr = io.EOF
	}
	u.mu.Unlock()
}

func (u *UI) ShowMessage(text string) { fmt.Fprintln(u.out, text) }

func (u *UI) ShowMessageColor(text string, c color.Name) {
	fmt.Fprintf(u.out, "%s%s%s\n", ansiCode(c), text, ansiReset)
}

func (u *UI) ShowError(text string) { fmt.Fprintf(u.out, "error: %s\n", text) }

func (u *UI) ShowPrompt(text string) { fmt.Fprintf(u.out, "%s ", text) }

func (u *UI) DrawCountdown(value string) { fmt.Fprintf(u.out, "\r%s ", value) }

func (u *UI) PollInput() (string, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.lines) == 0 {
		if u.scanErr != nil {
			return "", false, u.scanErr
		}
		return "", false, nil
	}
	line := u.lines[0]
	u.lines = u.lines[1:]
	return line, true, nil
}

func (u *UI) PollSingleKey() (string, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.keys) == 0 {
		if u.scanErr != nil {
			return "", false, u.scanErr
		}
		return "", false, nil
	}
	key := u.keys[0]
	u.keys = u.keys[1:]
	return key, true, nil
}

const ansiReset = "\x1b[0m"

// ansiCode renders a palette entry as a 24-bit ANSI foreground escape,
// since color.Palette already carries exact RGB triples.
func ansiCode(c color.Name) string {
	if int(c) < 0 || int(c) >= len(color.Palette) {
		return ""
	}
	rgb := color.Palette[c]
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", rgb.R, rgb.G, rgb.B)
}
