package passcode

// ClientID identifies one connecting client.
type ClientID uint64

// Attempts tracks per-client wrong-guess counts during authentication, per
// spec.md §4.3 Lobby's auth_attempts map. Not safe for concurrent use; owned
// by exactly one server session (spec.md §5).
type Attempts struct {
	counts map[ClientID]uint8
}

// NewAttempts returns an empty tracker.
func NewAttempts() *Attempts {
	return &Attempts{counts: make(map[ClientID]uint8)}
}

// Track begins counting attempts for id, starting at zero.
func (a *Attempts) Track(id ClientID) { a.counts[id] = 0 }

// IsTracked reports whether id is mid-authentication.
func (a *Attempts) IsTracked(id ClientID) bool {
	_, ok := a.counts[id]
	return ok
}

// RecordWrongGuess increments id's wrong-guess count and reports whether
// the client has now exceeded MaxAttempts and must be disconnected.
func (a *Attempts) RecordWrongGuess(id ClientID) (exceeded bool) {
	a.counts[id]++
	return a.counts[id] >= MaxAttempts
}

// Clear removes id from tracking, called on a correct guess or disconnect.
func (a *Attempts) Clear(id ClientID) { delete(a.counts, id) }
