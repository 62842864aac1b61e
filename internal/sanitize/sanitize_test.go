package sanitize

import "testing"

func TestStringStripsBell(t *testing.T) {
	if got := String("Hello\x07Bob"); got != "HelloBob" {
		t.Fatalf("String() = %q, want %q", got, "HelloBob")
	}
}

func TestStringStripsCSIColorSequences(t *testing.T) {
	if got := String("Red\x1b[31mX\x1b[0mY"); got != "RedXY" {
		t.Fatalf("String() = %q, want %q", got, "RedXY")
	}
}

func TestStringIsIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"Hello\x07Bob",
		"Red\x1b[31mX\x1b[0mY",
		"\x1b[unterminated",
		"emoji 🎮 passes through",
	}
	for _, s := range inputs {
		once := String(s)
		twice := String(once)
		if once != twice {
			t.Errorf("String(%q) not idempotent: once=%q twice=%q", s, once, twice)
		}
	}
}

func TestStringScenarioS3(t *testing.T) {
	got := String("Hello\x1b[31mBob\x1b[0m\x07!")
	want := "HelloBob!"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringPassesThroughUnicode(t *testing.T) {
	if got := String("héllo wörld"); got != "héllo wörld" {
		t.Fatalf("String() = %q, want unchanged", got)
	}
}
