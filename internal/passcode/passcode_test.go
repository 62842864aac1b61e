package passcode

import "testing"

func TestGenerateProducesDigitsAndMatchingString(t *testing.T) {
	p := Generate(6)

	if len(p.Digits) != 6 || len(p.String) != 6 {
		t.Fatalf("Generate(6) = %+v, want length 6 digits and string", p)
	}
	for i, d := range p.Digits {
		if d > 9 {
			t.Fatalf("digit %d out of range: %d", i, d)
		}
		if p.String[i] != '0'+d {
			t.Fatalf("string[%d] = %q, want digit %d", i, p.String[i], d)
		}
	}
}

func TestGenerateSupportsZeroLength(t *testing.T) {
	p := Generate(0)
	if len(p.Digits) != 0 || p.String != "" {
		t.Fatalf("Generate(0) = %+v, want empty", p)
	}
}

func TestFromStringRejectsNonDigits(t *testing.T) {
	if _, ok := FromString("12a4"); ok {
		t.Fatal("expected rejection of non-digit string")
	}
}

func TestFromStringRoundTripsWithFromBytes(t *testing.T) {
	want := FromBytes([]byte{1, 2, 3, 4, 5, 6})
	got, ok := FromString("123456")
	if !ok || got.String != want.String {
		t.Fatalf("FromString() = %+v, want %+v", got, want)
	}
}

func TestEqualMatchesExactDigits(t *testing.T) {
	p := FromBytes([]byte{1, 2, 3, 4, 5, 6})
	if !p.Equal([]byte{1, 2, 3, 4, 5, 6}) {
		t.Fatal("expected match")
	}
	if p.Equal([]byte{1, 2, 3, 4, 5, 7}) {
		t.Fatal("expected mismatch")
	}
	if p.Equal([]byte{1, 2, 3}) {
		t.Fatal("expected length mismatch to fail")
	}
}

func TestAttemptsDisconnectsAfterMaxWrongGuesses(t *testing.T) {
	a := NewAttempts()
	a.Track(1)

	if a.RecordWrongGuess(1) {
		t.Fatal("1st wrong guess should not exceed MaxAttempts")
	}
	if a.RecordWrongGuess(1) {
		t.Fatal("2nd wrong guess should not exceed MaxAttempts")
	}
	if !a.RecordWrongGuess(1) {
		t.Fatal("3rd wrong guess should exceed MaxAttempts")
	}
}

func TestAttemptsClearResetsTracking(t *testing.T) {
	a := NewAttempts()
	a.Track(1)
	a.RecordWrongGuess(1)
	a.Clear(1)

	if a.IsTracked(1) {
		t.Fatal("client should no longer be tracked after Clear")
	}
}
