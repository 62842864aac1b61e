package wire

import "fmt"

// ServerMessageTag identifies a ServerMessage variant on the wire.
type ServerMessageTag uint8

const (
	TagServerTime ServerMessageTag = iota
	TagCountdownStarted
	TagWelcome
	TagUsernameError
	TagAppointHost
	TagRoster
	TagUserJoined
	TagUserLeft
	TagChatMessage
	TagServerInfo
	TagBeginDifficultySelection
	TagDenyDifficultySelection
	TagSnapshot
	TagAfterGameRoster
	TagAfterGameLeaderboard
)

// RosterEntry is one online participant in a Roster, per spec.md §4.1
// `Roster{online:[{username,color}]}`.
type RosterEntry struct {
	Username string
	Color    uint8
}

// ServerMessage is a tagged union over spec.md §4.1's ServerMessage
// variants. Exactly the fields relevant to Tag are meaningful.
type ServerMessage struct {
	Tag ServerMessageTag

	ServerTime float64

	EndTime  float64
	GameData GameData

	Username string
	Color    uint8

	ErrorMessage string
	InfoMessage  string

	Roster []RosterEntry

	ChatContent string

	SnapshotID uint16
	Snapshot   Snapshot

	HadesShades []string
	Leaderboard []LeaderboardEntry
}

// EncodeServerMessage appends a full framed ServerMessage (tag + payload)
// to w.
func EncodeServerMessage(w *Writer, m ServerMessage) {
	w.WriteUint8(uint8(m.Tag))
	switch m.Tag {
	case TagServerTime:
		w.WriteFloat64(m.ServerTime)
	case TagCountdownStarted:
		w.WriteFloat64(m.EndTime)
		encodeGameData(w, m.GameData)
	case TagWelcome:
		w.WriteString(m.Username)
		w.WriteUint8(m.Color)
	case TagUsernameError:
		w.WriteString(m.ErrorMessage)
	case TagAppointHost:
		// no payload
	case TagRoster:
		w.WriteUint16(uint16(len(m.Roster)))
		for _, e := range m.Roster {
			w.WriteString(e.Username)
			w.WriteUint8(e.Color)
		}
	case TagUserJoined, TagUserLeft:
		w.WriteString(m.Username)
	case TagChatMessage:
		w.WriteString(m.Username)
		w.WriteUint8(m.Color)
		w.WriteString(m.ChatContent)
	case TagServerInfo:
		w.WriteString(m.InfoMessage)
	case TagBeginDifficultySelection, TagDenyDifficultySelection:
		// no payload
	case TagSnapshot:
		w.WriteUint16(m.SnapshotID)
		EncodeSnapshot(w, m.Snapshot)
	case TagAfterGameRoster:
		w.WriteUint16(uint16(len(m.HadesShades)))
		for _, name := range m.HadesShades {
			w.WriteString(name)
		}
	case TagAfterGameLeaderboard:
		w.WriteUint16(uint16(len(m.Leaderboard)))
		for _, e := range m.Leaderboard {
			encodeLeaderboardEntry(w, e)
		}
	}
}

// DecodeServerMessage reads a ServerMessage written by EncodeServerMessage.
func DecodeServerMessage(r *Reader) (ServerMessage, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return ServerMessage{}, err
	}

	m := ServerMessage{Tag: ServerMessageTag(tag)}
	switch m.Tag {
	case TagServerTime:
		m.ServerTime, err = r.ReadFloat64()
	case TagCountdownStarted:
		if m.EndTime, err = r.ReadFloat64(); err != nil {
			break
		}
		m.GameData, err = decodeGameData(r)
	case TagWelcome:
		if m.Username, err = r.ReadString(); err != nil {
			break
		}
		m.Color, err = r.ReadUint8()
	case TagUsernameError:
		m.ErrorMessage, err = r.ReadString()
	case TagAppointHost:
		// no payload
	case TagRoster:
		var n uint16
		if n, err = r.ReadUint16(); err != nil {
			break
		}
		m.Roster = make([]RosterEntry, 0, n)
		for i := uint16(0); i < n; i++ {
			var e RosterEntry
			if e.Username, err = r.ReadString(); err != nil {
				break
			}
			if e.Color, err = r.ReadUint8(); err != nil {
				break
			}
			m.Roster = append(m.Roster, e)
		}
	case TagUserJoined, TagUserLeft:
		m.Username, err = r.ReadString()
	case TagChatMessage:
		if m.Username, err = r.ReadString(); err != nil {
			break
		}
		if m.Color, err = r.ReadUint8(); err != nil {
			break
		}
		m.ChatContent, err = r.ReadString()
	case TagServerInfo:
		m.InfoMessage, err = r.ReadString()
	case TagBeginDifficultySelection, TagDenyDifficultySelection:
		// no payload
	case TagSnapshot:
		if m.SnapshotID, err = r.ReadUint16(); err != nil {
			break
		}
		m.Snapshot, err = DecodeSnapshot(r)
	case TagAfterGameRoster:
		var n uint16
		if n, err = r.ReadUint16(); err != nil {
			break
		}
		m.HadesShades = make([]string, 0, n)
		for i := uint16(0); i < n; i++ {
			var name string
			if name, err = r.ReadString(); err != nil {
				break
			}
			m.HadesShades = append(m.HadesShades, name)
		}
	case TagAfterGameLeaderboard:
		var n uint16
		if n, err = r.ReadUint16(); err != nil {
			break
		}
		m.Leaderboard = make([]LeaderboardEntry, 0, n)
		for i := uint16(0); i < n; i++ {
			var e LeaderboardEntry
			if e, err = decodeLeaderboardEntry(r); err != nil {
				break
			}
			m.Leaderboard = append(m.Leaderboard, e)
		}
	default:
		return ServerMessage{}, fmt.Errorf("wire: unknown ServerMessage tag %d", tag)
	}
	if err != nil {
		return ServerMessage{}, err
	}
	return m, nil
}
