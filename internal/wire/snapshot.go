package wire

// RemotePlayer is one other player's view inside a Snapshot, matching the
// original's WirePlayerRemote (original_source/common/src/player.rs):
// position, yaw, and pitch only — enough to render, not to reconcile.
type RemotePlayer struct {
	Index        uint16
	X, Y, Z      float64
	Yaw, Pitch   float64
}

// LocalPlayer is the recipient's own view inside a Snapshot, matching the
// original's WirePlayerLocal: the fuller state including velocity and
// rotation velocities, which the client may want for prediction even
// though spec.md §9 leaves reconciliation unspecified.
type LocalPlayer struct {
	X, Y, Z                   float64
	VX, VY, VZ                float64
	Yaw, Pitch                float64
	YawVelocity, PitchVelocity float64
	IsZoomed                  bool
}

// Snapshot is the server's authoritative view of all players at one tick,
// per the GLOSSARY's "Snapshot" entry: a local view for the recipient plus
// a list of remote views for everyone else.
type Snapshot struct {
	Local  LocalPlayer
	Remote []RemotePlayer
}

func encodeLocalPlayer(w *Writer, p LocalPlayer) {
	w.WriteFloat64(p.X)
	w.WriteFloat64(p.Y)
	w.WriteFloat64(p.Z)
	w.WriteFloat64(p.VX)
	w.WriteFloat64(p.VY)
	w.WriteFloat64(p.VZ)
	w.WriteFloat64(p.Yaw)
	w.WriteFloat64(p.Pitch)
	w.WriteFloat64(p.YawVelocity)
	w.WriteFloat64(p.PitchVelocity)
	w.WriteBool(p.IsZoomed)
}

func decodeLocalPlayer(r *Reader) (LocalPlayer, error) {
	var p LocalPlayer
	var err error
	for _, f := range []*float64{&p.X, &p.Y, &p.Z, &p.VX, &p.VY, &p.VZ, &p.Yaw, &p.Pitch, &p.YawVelocity, &p.PitchVelocity} {
		*f, err = r.ReadFloat64()
		if err != nil {
			return LocalPlayer{}, err
		}
	}
	p.IsZoomed, err = r.ReadBool()
	return p, err
}

func encodeRemotePlayer(w *Writer, p RemotePlayer) {
	w.WriteUint16(p.Index)
	w.WriteFloat64(p.X)
	w.WriteFloat64(p.Y)
	w.WriteFloat64(p.Z)
	w.WriteFloat64(p.Yaw)
	w.WriteFloat64(p.Pitch)
}

func decodeRemotePlayer(r *Reader) (RemotePlayer, error) {
	var p RemotePlayer
	var err error
	if p.Index, err = r.ReadUint16(); err != nil {
		return RemotePlayer{}, err
	}
	for _, f := range []*float64{&p.X, &p.Y, &p.Z, &p.Yaw, &p.Pitch} {
		*f, err = r.ReadFloat64()
		if err != nil {
			return RemotePlayer{}, err
		}
	}
	return p, nil
}

// EncodeSnapshot appends a Snapshot to w.
func EncodeSnapshot(w *Writer, s Snapshot) {
	encodeLocalPlayer(w, s.Local)
	w.WriteUint16(uint16(len(s.Remote)))
	for _, rp := range s.Remote {
		encodeRemotePlayer(w, rp)
	}
}

// DecodeSnapshot reads a Snapshot written by EncodeSnapshot.
func DecodeSnapshot(r *Reader) (Snapshot, error) {
	local, err := decodeLocalPlayer(r)
	if err != nil {
		return Snapshot{}, err
	}
	n, err := r.ReadUint16()
	if err != nil {
		return Snapshot{}, err
	}
	remote := make([]RemotePlayer, 0, n)
	for i := uint16(0); i < n; i++ {
		rp, err := decodeRemotePlayer(r)
		if err != nil {
			return Snapshot{}, err
		}
		remote = append(remote, rp)
	}
	return Snapshot{Local: local, Remote: remote}, nil
}
