package clientapp

import (
	"github.com/mazenet/mazenet/internal/ui"
	"github.com/mazenet/mazenet/internal/wire"
)

// heldKeys tracks the movement/look state that a real keyboard would report
// as "key down", reconstructed from ui.UI.PollSingleKey's discrete keypress
// events. original_source/client/src/game/input.rs reads is_key_down per
// axis directly from the window toolkit each frame; terminal.UI has no such
// signal (per its own doc comment, a raw single-keystroke read needs raw
// terminal mode, which it deliberately skips), so each axis instead latches
// on its press key and stays latched until the opposing key or the stop key
// arrives. fireNonce counts fire keypresses so repeated fires on the same
// tick are still distinguishable on the wire.
type heldKeys struct {
	forward, backward, left, right bool
	yawLeft, yawRight               bool
	pitchUp, pitchDown bool
	isZoomed bool
	fireNonce uint32
}

// apply folds one single-key event into the held state. Unrecognized keys
// are ignored.
func (h *heldKeys) apply(key string) (fired bool) {
	switch key {
	case "w":
		h.forward, h.backward = true, false
	case "s":
		h.backward, h.forward = true, false
	case "a":
		h.left, h.right = true, false
	case "d":
		h.right, h.left = true, false
	case "j":
		h.yawLeft, h.yawRight = true, false
	case "l":
		h.yawRight, h.yawLeft = true, false
	case "i":
		h.pitchUp, h.pitchDown = true, false
	case "k":
		h.pitchDown, h.pitchUp = true, false
	case "z":
		h.isZoomed = !h.isZoomed
	case "x", " ":
		h.forward, h.backward, h.left, h.right = false, false, false, false
		h.yawLeft, h.yawRight, h.pitchUp, h.pitchDown = false, false, false, false
	case "f":
		h.fireNonce++
		fired = true
	}
	return fired
}

// captureInput drains every single-key event screen has ready, folds them
// into held, and builds this tick's PlayerInput. A fire keypress stamps a
// fresh FireNonce so the server can tell repeated fires apart even though
// Fire itself is a single bit, per wire.PlayerInput's doc comment.
func captureInput(screen ui.UI, held *heldKeys) wire.PlayerInput {
	fired := false
	for {
		key, ok, err := screen.PollSingleKey()
		if err != nil || !ok {
			break
		}
		if held.apply(key) {
			fired = true
		}
	}

	input := wire.PlayerInput{
		Forward:   held.forward,
		Backward:  held.backward,
		Left:      held.left,
		Right:     held.right,
		YawLeft:   held.yawLeft,
		YawRight:  held.yawRight,
		PitchUp:   held.pitchUp,
		PitchDown: held.pitchDown,
		Fire:      fired,
		IsZoomed:  held.isZoomed,
	}
	if fired {
		nonce := held.fireNonce
		input.FireNonce = &nonce
	}
	return input
}
