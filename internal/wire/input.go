package wire

// PlayerInput is the wire representation of spec.md §3 PlayerInput: one
// frame's held keys plus an optional fire nonce. The sim_tick is not
// carried in this struct — it travels as the enclosing WireItem's 16-bit
// id instead, so the ring buffer's wrap-around/extend machinery (spec.md
// §4.2) is actually exercised on the input channel, per spec.md §4.1's
// `Input(WireItem<PlayerInput>)` framing. The ten boolean fields are packed
// into a bitmask on the wire — a departure from the original's
// one-field-per-bool layout, kept canonical (a fixed, documented bit order)
// and shrinking every input frame, which matters since inputs are the
// highest-frequency message on the wire.
type PlayerInput struct {
	Forward, Backward, Left, Right bool
	YawLeft, YawRight              bool
	PitchUp, PitchDown             bool
	Fire                           bool
	IsZoomed                       bool
	FireNonce                      *uint32
}

const (
	bitForward = 1 << iota
	bitBackward
	bitLeft
	bitRight
	bitYawLeft
	bitYawRight
	bitPitchUp
	bitPitchDown
	bitFire
	bitIsZoomed
)

func (p PlayerInput) flags() uint16 {
	var f uint16
	if p.Forward {
		f |= bitForward
	}
	if p.Backward {
		f |= bitBackward
	}
	if p.Left {
		f |= bitLeft
	}
	if p.Right {
		f |= bitRight
	}
	if p.YawLeft {
		f |= bitYawLeft
	}
	if p.YawRight {
		f |= bitYawRight
	}
	if p.PitchUp {
		f |= bitPitchUp
	}
	if p.PitchDown {
		f |= bitPitchDown
	}
	if p.Fire {
		f |= bitFire
	}
	if p.IsZoomed {
		f |= bitIsZoomed
	}
	return f
}

// EncodeInput appends a PlayerInput to w: a bitmask of held keys followed
// by an optional fire_nonce (a presence byte then, if set, a uint32).
func EncodeInput(w *Writer, p PlayerInput) {
	w.WriteUint16(p.flags())
	if p.FireNonce != nil {
		w.WriteBool(true)
		w.WriteUint32(*p.FireNonce)
	} else {
		w.WriteBool(false)
	}
}

// DecodeInput reads a PlayerInput written by EncodeInput.
func DecodeInput(r *Reader) (PlayerInput, error) {
	flags, err := r.ReadUint16()
	if err != nil {
		return PlayerInput{}, err
	}
	hasNonce, err := r.ReadBool()
	if err != nil {
		return PlayerInput{}, err
	}
	var nonce *uint32
	if hasNonce {
		v, err := r.ReadUint32()
		if err != nil {
			return PlayerInput{}, err
		}
		nonce = &v
	}
	return PlayerInput{
		Forward:   flags&bitForward != 0,
		Backward:  flags&bitBackward != 0,
		Left:      flags&bitLeft != 0,
		Right:     flags&bitRight != 0,
		YawLeft:   flags&bitYawLeft != 0,
		YawRight:  flags&bitYawRight != 0,
		PitchUp:   flags&bitPitchUp != 0,
		PitchDown: flags&bitPitchDown != 0,
		Fire:      flags&bitFire != 0,
		IsZoomed:  flags&bitIsZoomed != 0,
		FireNonce: nonce,
	}, nil
}
