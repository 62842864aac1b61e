// Package fake provides a scripted UI double for session tests: queued
// lines/keys to hand back from PollInput/PollSingleKey, and a recorder of
// everything shown. Grounded on the teacher's internal/testutil mocks
// (MockDB, MockConn): an in-memory stand-in exposing the same surface the
// real implementation would, plus a few extra accessors for assertions.
package fake

import (
	"errors"

	"github.com/mazenet/mazenet/internal/color"
)

// UI is a scripted internal/ui.UI. Queue input with PushLine/PushKey before
// the code under test calls PollInput/PollSingleKey; inspect what was shown
// via Messages/Errors/Prompts/Countdowns.
type UI struct {
	lines []string
	keys  []string

	Messages   []string
	Errors     []string
	Prompts    []string
	Countdowns []string

	// Gone makes PollInput/PollSingleKey return an error once no more
	// scripted input remains, simulating a closed input source.
	Gone bool
}

// New returns an empty fake UI.
func New() *UI { return &UI{} }

// PushLine queues a line to be returned by a future PollInput call.
func (f *UI) PushLine(line string) { f.lines = append(f.lines, line) }

// PushKey queues a keypress to be returned by a future PollSingleKey call.
func (f *UI) PushKey(key string) { f.keys = append(f.keys, key) }

func (f *UI) ShowMessage(text string) { f.Messages = append(f.Messages, text) }

func (f *UI) ShowMessageColor(text string, _ color.Name) {
	f.Messages = append(f.Messages, text)
}

func (f *UI) ShowError(text string) { f.Errors = append(f.Errors, text) }

func (f *UI) ShowPrompt(text string) { f.Prompts = append(f.Prompts, text) }

func (f *UI) DrawCountdown(value string) { f.Countdowns = append(f.Countdowns, value) }

func (f *UI) PollInput() (string, bool, error) {
	if len(f.lines) == 0 {
		if f.Gone {
			return "", false, errors.New("fake: input source closed")
		}
		return "", false, nil
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, true, nil
}

func (f *UI) PollSingleKey() (string, bool, error) {
	if len(f.keys) == 0 {
		if f.Gone {
			return "", false, errors.New("fake: input source closed")
		}
		return "", false, nil
	}
	key := f.keys[0]
	f.keys = f.keys[1:]
	return key, true, nil
}
