package username

import "testing"

func TestSanitizeRejectsEmpty(t *testing.T) {
	if _, err := Sanitize("   "); err == nil || err.(*Error).Kind != Empty {
		t.Fatalf("Sanitize() err = %v, want Empty", err)
	}
}

func TestSanitizeRejectsTooLong(t *testing.T) {
	if _, err := Sanitize("abcdefghijklmnopq"); err == nil || err.(*Error).Kind != TooLong {
		t.Fatalf("Sanitize() err = %v, want TooLong", err)
	}
}

func TestSanitizeRejectsInvalidCharacter(t *testing.T) {
	_, err := Sanitize("user!")
	if err == nil {
		t.Fatal("expected error")
	}
	if e := err.(*Error); e.Kind != InvalidCharacter || e.Invalid != '!' {
		t.Fatalf("Sanitize() err = %+v, want InvalidCharacter('!')", e)
	}
}

func TestSanitizeAcceptsValidUsernames(t *testing.T) {
	got, err := Sanitize("Player_1")
	if err != nil || got != "Player_1" {
		t.Fatalf("Sanitize() = (%q, %v), want (Player_1, nil)", got, err)
	}
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	got, err := Sanitize("  Player-2  ")
	if err != nil || got != "Player-2" {
		t.Fatalf("Sanitize() = (%q, %v), want (Player-2, nil)", got, err)
	}
}

func TestSanitizeRejectsReservedNamesCaseInsensitively(t *testing.T) {
	for _, name := range []string{"server", "Admin", "HOST", "system", "You"} {
		if _, err := Sanitize(name); err == nil || err.(*Error).Kind != Reserved {
			t.Fatalf("Sanitize(%q) err = %v, want Reserved", name, err)
		}
	}
}

func TestRegisterFirstClientBecomesHost(t *testing.T) {
	r := NewRegistry()
	r.MarkPending(1)

	name, becameHost, err := r.Register(1, "Bob")
	if err != nil || name != "Bob" || !becameHost {
		t.Fatalf("Register() = (%q, %v, %v), want (Bob, true, nil)", name, becameHost, err)
	}
	if !r.IsHost(1) {
		t.Fatal("client 1 should be host")
	}
	if r.IsPending(1) {
		t.Fatal("client 1 should no longer be pending")
	}
}

func TestRegisterSecondClientDoesNotBecomeHost(t *testing.T) {
	r := NewRegistry()
	r.MarkPending(1)
	r.MarkPending(2)
	r.Register(1, "Alice")

	_, becameHost, err := r.Register(2, "Bob")
	if err != nil || becameHost {
		t.Fatalf("Register() becameHost = %v, want false", becameHost)
	}
}

func TestRegisterRejectsCaseInsensitiveDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MarkPending(1)
	r.MarkPending(2)
	r.Register(1, "Alice")

	if _, _, err := r.Register(2, "ALICE"); err == nil {
		t.Fatal("expected duplicate-name rejection")
	}
}

func TestOnlineExcludesRequester(t *testing.T) {
	r := NewRegistry()
	r.MarkPending(1)
	r.MarkPending(2)
	r.Register(1, "Alice")
	r.Register(2, "Bob")

	online := r.Online(2)
	if len(online) != 1 || online[0] != "Alice" {
		t.Fatalf("Online(2) = %v, want [Alice]", online)
	}
}

func TestRemoveHostPromotesNextInInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.MarkPending(1)
	r.MarkPending(2)
	r.Register(1, "Alice")
	r.Register(2, "Bob")

	hadUsername, newHost, hostChanged := r.Remove(1)
	if !hadUsername || !hostChanged || newHost != 2 {
		t.Fatalf("Remove(1) = (%v, %v, %v), want (true, 2, true)", hadUsername, newHost, hostChanged)
	}
	if !r.IsHost(2) {
		t.Fatal("client 2 should now be host")
	}
}

func TestRemovePendingClientHasNoUsername(t *testing.T) {
	r := NewRegistry()
	r.MarkPending(1)

	hadUsername, _, hostChanged := r.Remove(1)
	if hadUsername || hostChanged {
		t.Fatalf("Remove(1) = (%v, _, %v), want (false, _, false)", hadUsername, hostChanged)
	}
}
