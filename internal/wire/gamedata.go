package wire

// InitialPlayer is one player's starting data inside GameData, built from
// the authenticated (client_id -> username -> color) set per spec.md §3
// InitialData.
type InitialPlayer struct {
	Username  string
	Color     uint8 // color.Name
	X, Y, Z   float64
}

// GameData is the wire form of spec.md §3 InitialData, carried inside
// CountdownStarted so the client can pre-build render assets during the
// countdown (spec.md §4.6).
type GameData struct {
	MazeGrid   [][]uint8
	Players    []InitialPlayer
	Difficulty uint8
	HasExit    bool
	ExitRow    uint16
	ExitCol    uint16
	TimerSecs  float64
}

func encodeGameData(w *Writer, g GameData) {
	w.WriteUint16(uint16(len(g.MazeGrid)))
	for _, row := range g.MazeGrid {
		w.WriteUint16(uint16(len(row)))
		for _, cell := range row {
			w.WriteUint8(cell)
		}
	}

	w.WriteUint16(uint16(len(g.Players)))
	for _, p := range g.Players {
		w.WriteString(p.Username)
		w.WriteUint8(p.Color)
		w.WriteFloat64(p.X)
		w.WriteFloat64(p.Y)
		w.WriteFloat64(p.Z)
	}

	w.WriteUint8(g.Difficulty)
	w.WriteBool(g.HasExit)
	if g.HasExit {
		w.WriteUint16(g.ExitRow)
		w.WriteUint16(g.ExitCol)
	}
	w.WriteFloat64(g.TimerSecs)
}

func decodeGameData(r *Reader) (GameData, error) {
	var g GameData

	rows, err := r.ReadUint16()
	if err != nil {
		return GameData{}, err
	}
	g.MazeGrid = make([][]uint8, rows)
	for i := range g.MazeGrid {
		cols, err := r.ReadUint16()
		if err != nil {
			return GameData{}, err
		}
		row := make([]uint8, cols)
		for j := range row {
			cell, err := r.ReadUint8()
			if err != nil {
				return GameData{}, err
			}
			row[j] = cell
		}
		g.MazeGrid[i] = row
	}

	numPlayers, err := r.ReadUint16()
	if err != nil {
		return GameData{}, err
	}
	g.Players = make([]InitialPlayer, 0, numPlayers)
	for i := uint16(0); i < numPlayers; i++ {
		var p InitialPlayer
		if p.Username, err = r.ReadString(); err != nil {
			return GameData{}, err
		}
		if p.Color, err = r.ReadUint8(); err != nil {
			return GameData{}, err
		}
		if p.X, err = r.ReadFloat64(); err != nil {
			return GameData{}, err
		}
		if p.Y, err = r.ReadFloat64(); err != nil {
			return GameData{}, err
		}
		if p.Z, err = r.ReadFloat64(); err != nil {
			return GameData{}, err
		}
		g.Players = append(g.Players, p)
	}

	if g.Difficulty, err = r.ReadUint8(); err != nil {
		return GameData{}, err
	}
	if g.HasExit, err = r.ReadBool(); err != nil {
		return GameData{}, err
	}
	if g.HasExit {
		if g.ExitRow, err = r.ReadUint16(); err != nil {
			return GameData{}, err
		}
		if g.ExitCol, err = r.ReadUint16(); err != nil {
			return GameData{}, err
		}
	}
	if g.TimerSecs, err = r.ReadFloat64(); err != nil {
		return GameData{}, err
	}

	return g, nil
}

// LeaderboardEntry is the wire form of the GLOSSARY's "Leaderboard entry":
// {username, color, ticks_survived, exit_reason}.
type LeaderboardEntry struct {
	Username      string
	Color         uint8
	TicksSurvived uint64
	ExitReason    ExitReason
}

// ExitReason explains how a player's match ended. Not enumerated anywhere
// in spec.md; these three values are the only ways a match ends per
// spec.md §4.5/§4.3 (reaching the exit, dying, or disconnecting).
type ExitReason uint8

const (
	ExitReasonEscaped ExitReason = iota
	ExitReasonDied
	ExitReasonDisconnected
)

func encodeLeaderboardEntry(w *Writer, e LeaderboardEntry) {
	w.WriteString(e.Username)
	w.WriteUint8(e.Color)
	w.WriteUint64(e.TicksSurvived)
	w.WriteUint8(uint8(e.ExitReason))
}

func decodeLeaderboardEntry(r *Reader) (LeaderboardEntry, error) {
	var e LeaderboardEntry
	var err error
	if e.Username, err = r.ReadString(); err != nil {
		return LeaderboardEntry{}, err
	}
	if e.Color, err = r.ReadUint8(); err != nil {
		return LeaderboardEntry{}, err
	}
	if e.TicksSurvived, err = r.ReadUint64(); err != nil {
		return LeaderboardEntry{}, err
	}
	reason, err := r.ReadUint8()
	if err != nil {
		return LeaderboardEntry{}, err
	}
	e.ExitReason = ExitReason(reason)
	return e, nil
}
