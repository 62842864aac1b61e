package wire

import "fmt"

// ClientMessageTag identifies a ClientMessage variant on the wire.
type ClientMessageTag uint8

const (
	TagSendPasscode ClientMessageTag = iota
	TagSetUsername
	TagSendChat
	TagRequestStartGame
	TagSetDifficulty
	TagInput
)

// ClientMessage is a tagged union over spec.md §4.1's ClientMessage
// variants. Exactly one field is meaningful per Tag.
type ClientMessage struct {
	Tag ClientMessageTag

	PasscodeGuess []byte
	Username      string
	ChatText      string
	Difficulty    uint8
	InputID       uint16
	Input         PlayerInput
}

// EncodeClientMessage appends a full framed ClientMessage (tag + payload)
// to w.
func EncodeClientMessage(w *Writer, m ClientMessage) {
	w.WriteUint8(uint8(m.Tag))
	switch m.Tag {
	case TagSendPasscode:
		w.WriteBytes(m.PasscodeGuess)
	case TagSetUsername:
		w.WriteString(m.Username)
	case TagSendChat:
		w.WriteString(m.ChatText)
	case TagRequestStartGame:
		// no payload
	case TagSetDifficulty:
		w.WriteUint8(m.Difficulty)
	case TagInput:
		w.WriteUint16(m.InputID)
		EncodeInput(w, m.Input)
	}
}

// DecodeClientMessage reads a ClientMessage written by EncodeClientMessage.
func DecodeClientMessage(r *Reader) (ClientMessage, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return ClientMessage{}, err
	}

	m := ClientMessage{Tag: ClientMessageTag(tag)}
	switch m.Tag {
	case TagSendPasscode:
		m.PasscodeGuess, err = r.ReadBytes()
	case TagSetUsername:
		m.Username, err = r.ReadString()
	case TagSendChat:
		m.ChatText, err = r.ReadString()
	case TagRequestStartGame:
		// no payload
	case TagSetDifficulty:
		m.Difficulty, err = r.ReadUint8()
	case TagInput:
		if m.InputID, err = r.ReadUint16(); err != nil {
			return ClientMessage{}, err
		}
		m.Input, err = DecodeInput(r)
	default:
		return ClientMessage{}, fmt.Errorf("wire: unknown ClientMessage tag %d", tag)
	}
	if err != nil {
		return ClientMessage{}, err
	}
	return m, nil
}
