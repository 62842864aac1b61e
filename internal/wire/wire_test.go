package wire

import "testing"

func TestWriterReaderRoundTripsPrimitives(t *testing.T) {
	w := NewWriter(64)
	w.WriteUint8(7)
	w.WriteBool(true)
	w.WriteUint16(1234)
	w.WriteUint32(123456789)
	w.WriteUint64(0xFFFFFFFFFFFFFFFF)
	w.WriteFloat64(3.14159)
	w.WriteString("hello")
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())

	if v, _ := r.ReadUint8(); v != 7 {
		t.Fatalf("ReadUint8() = %d, want 7", v)
	}
	if v, _ := r.ReadBool(); !v {
		t.Fatal("ReadBool() = false, want true")
	}
	if v, _ := r.ReadUint16(); v != 1234 {
		t.Fatalf("ReadUint16() = %d, want 1234", v)
	}
	if v, _ := r.ReadUint32(); v != 123456789 {
		t.Fatalf("ReadUint32() = %d, want 123456789", v)
	}
	if v, _ := r.ReadUint64(); v != 0xFFFFFFFFFFFFFFFF {
		t.Fatalf("ReadUint64() = %d, want max uint64", v)
	}
	if v, _ := r.ReadFloat64(); v != 3.14159 {
		t.Fatalf("ReadFloat64() = %v, want 3.14159", v)
	}
	if v, _ := r.ReadString(); v != "hello" {
		t.Fatalf("ReadString() = %q, want hello", v)
	}
	if v, _ := r.ReadBytes(); string(v) != "\x01\x02\x03" {
		t.Fatalf("ReadBytes() = %v, want [1 2 3]", v)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderErrorsOnTruncatedInput(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.ReadUint64(); err == nil {
		t.Fatal("expected error reading uint64 from 2-byte buffer")
	}
}

func TestEncodeDecodeInputRoundTrips(t *testing.T) {
	nonce := uint32(42)
	in := PlayerInput{Forward: true, YawRight: true, IsZoomed: true, FireNonce: &nonce}

	w := NewWriter(16)
	EncodeInput(w, in)

	got, err := DecodeInput(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeInput() error = %v", err)
	}
	if got.Forward != in.Forward || got.YawRight != in.YawRight || got.IsZoomed != in.IsZoomed {
		t.Fatalf("DecodeInput() = %+v, want matching %+v", got, in)
	}
	if got.FireNonce == nil || *got.FireNonce != 42 {
		t.Fatalf("DecodeInput() FireNonce = %v, want 42", got.FireNonce)
	}
	if got.Backward || got.Left || got.Right || got.YawLeft || got.PitchUp || got.PitchDown || got.Fire {
		t.Fatalf("DecodeInput() set unexpected flags: %+v", got)
	}
}

func TestEncodeDecodeInputWithoutNonce(t *testing.T) {
	in := PlayerInput{Backward: true}
	w := NewWriter(16)
	EncodeInput(w, in)

	got, err := DecodeInput(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeInput() error = %v", err)
	}
	if got.FireNonce != nil {
		t.Fatalf("DecodeInput() FireNonce = %v, want nil", got.FireNonce)
	}
}

func TestEncodeDecodeSnapshotRoundTrips(t *testing.T) {
	s := Snapshot{
		Local: LocalPlayer{X: 1, Y: 2, Z: 3, VX: 0.5, Yaw: 0.1, Pitch: 0.2, IsZoomed: true},
		Remote: []RemotePlayer{
			{Index: 1, X: 10, Y: 0, Z: 20, Yaw: 0.3, Pitch: 0},
			{Index: 2, X: -5, Y: 0, Z: 8, Yaw: -0.1, Pitch: 0.05},
		},
	}

	w := NewWriter(128)
	EncodeSnapshot(w, s)

	got, err := DecodeSnapshot(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if got.Local != s.Local {
		t.Fatalf("DecodeSnapshot().Local = %+v, want %+v", got.Local, s.Local)
	}
	if len(got.Remote) != 2 || got.Remote[0] != s.Remote[0] || got.Remote[1] != s.Remote[1] {
		t.Fatalf("DecodeSnapshot().Remote = %+v, want %+v", got.Remote, s.Remote)
	}
}

func TestEncodeDecodeClientMessageEachVariant(t *testing.T) {
	cases := []ClientMessage{
		{Tag: TagSendPasscode, PasscodeGuess: []byte{1, 2, 3, 4, 5, 6}},
		{Tag: TagSetUsername, Username: "Bob"},
		{Tag: TagSendChat, ChatText: "hi there"},
		{Tag: TagRequestStartGame},
		{Tag: TagSetDifficulty, Difficulty: 2},
		{Tag: TagInput, InputID: 64000, Input: PlayerInput{Forward: true}},
	}

	for _, want := range cases {
		w := NewWriter(64)
		EncodeClientMessage(w, want)

		got, err := DecodeClientMessage(NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("tag %d: DecodeClientMessage() error = %v", want.Tag, err)
		}
		if got.Tag != want.Tag {
			t.Fatalf("tag %d: got Tag %d", want.Tag, got.Tag)
		}
	}
}

func TestEncodeDecodeServerMessageEachVariant(t *testing.T) {
	cases := []ServerMessage{
		{Tag: TagServerTime, ServerTime: 12.5},
		{Tag: TagCountdownStarted, EndTime: 99.0, GameData: GameData{MazeGrid: [][]uint8{{1, 0}, {0, 1}}, Difficulty: 2, TimerSecs: 120}},
		{Tag: TagWelcome, Username: "Bob", Color: 0},
		{Tag: TagUsernameError, ErrorMessage: "taken"},
		{Tag: TagAppointHost},
		{Tag: TagRoster, Roster: []RosterEntry{{Username: "Alice", Color: 1}}},
		{Tag: TagUserJoined, Username: "Carol"},
		{Tag: TagUserLeft, Username: "Carol"},
		{Tag: TagChatMessage, Username: "Alice", Color: 1, ChatContent: "hello"},
		{Tag: TagServerInfo, InfoMessage: "info"},
		{Tag: TagBeginDifficultySelection},
		{Tag: TagDenyDifficultySelection},
		{Tag: TagSnapshot, SnapshotID: 42, Snapshot: Snapshot{Local: LocalPlayer{X: 1}}},
		{Tag: TagAfterGameRoster, HadesShades: []string{"Alice", "Bob"}},
		{Tag: TagAfterGameLeaderboard, Leaderboard: []LeaderboardEntry{{Username: "Alice", Color: 1, TicksSurvived: 900, ExitReason: ExitReasonEscaped}}},
	}

	for _, want := range cases {
		w := NewWriter(256)
		EncodeServerMessage(w, want)

		got, err := DecodeServerMessage(NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("tag %d: DecodeServerMessage() error = %v", want.Tag, err)
		}
		if got.Tag != want.Tag {
			t.Fatalf("tag %d: got Tag %d", want.Tag, got.Tag)
		}
	}
}

func TestGameDataRoundTripsMazeAndPlayers(t *testing.T) {
	g := GameData{
		MazeGrid:   [][]uint8{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}},
		Players:    []InitialPlayer{{Username: "Alice", Color: 0, X: 1, Y: 2, Z: 3}},
		Difficulty: 3,
		HasExit:    true,
		ExitRow:    1,
		ExitCol:    1,
		TimerSecs:  300,
	}

	w := NewWriter(128)
	encodeGameData(w, g)

	got, err := decodeGameData(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("decodeGameData() error = %v", err)
	}
	if len(got.MazeGrid) != 3 || got.MazeGrid[1][1] != 0 {
		t.Fatalf("decodeGameData() grid mismatch: %v", got.MazeGrid)
	}
	if len(got.Players) != 1 || got.Players[0].Username != "Alice" {
		t.Fatalf("decodeGameData() players mismatch: %v", got.Players)
	}
	if !got.HasExit || got.ExitRow != 1 || got.ExitCol != 1 {
		t.Fatalf("decodeGameData() exit mismatch: %+v", got)
	}
}

func TestWriterPoolRoundTrip(t *testing.T) {
	w := GetWriter()
	w.WriteUint8(9)
	b := append([]byte(nil), w.Bytes()...)
	w.Put()

	r := NewReader(b)
	if v, _ := r.ReadUint8(); v != 9 {
		t.Fatalf("ReadUint8() = %d, want 9", v)
	}
}
