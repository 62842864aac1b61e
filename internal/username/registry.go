package username

// ClientID identifies one connected client, per spec.md §3.
type ClientID uint64

// Registry tracks the Lobby's pending and confirmed usernames plus host
// election, per spec.md §4.3's Lobby description: `pending_usernames`,
// `usernames`, and an optional `host_id`. Not safe for concurrent use; owned
// by exactly one server session (spec.md §5).
type Registry struct {
	pending map[ClientID]bool
	names   map[ClientID]string // client -> username
	order   []ClientID          // insertion order, for host succession
	hostID  *ClientID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pending: make(map[ClientID]bool),
		names:   make(map[ClientID]string),
	}
}

// MarkPending records that a client has passed passcode authentication and
// may now call Register, per spec.md §4.3 Lobby step 2.
func (r *Registry) MarkPending(id ClientID) { r.pending[id] = true }

// IsPending reports whether id has passed authentication but not yet
// registered a username.
func (r *Registry) IsPending(id ClientID) bool { return r.pending[id] }

// Register validates and claims name for id, per spec.md §4.3 Lobby step 3.
// On success it removes id from pending, returns whether id became host
// (true iff this is the first registration), and the sanitized name.
func (r *Registry) Register(id ClientID, name string) (sanitized string, becameHost bool, err error) {
	sanitized, err = Sanitize(name)
	if err != nil {
		return "", false, err
	}

	lower := lowerASCII(sanitized)
	for _, existing := range r.names {
		if lowerASCII(existing) == lower {
			return "", false, &Error{Kind: Taken}
		}
	}

	delete(r.pending, id)
	r.names[id] = sanitized
	r.order = append(r.order, id)

	if r.hostID == nil {
		r.hostID = &id
		becameHost = true
	}

	return sanitized, becameHost, nil
}

// Username returns the registered name for id, if any.
func (r *Registry) Username(id ClientID) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// IsHost reports whether id is the current host.
func (r *Registry) IsHost(id ClientID) bool { return r.hostID != nil && *r.hostID == id }

// HostID returns the current host, if any.
func (r *Registry) HostID() (ClientID, bool) {
	if r.hostID == nil {
		return 0, false
	}
	return *r.hostID, true
}

// Online returns every registered username, in insertion order, excluding
// the given client (used to build a Roster for the client it's addressed
// to, per spec.md §4.3 step 3's "Roster{online=others}").
func (r *Registry) Online(excluding ClientID) []string {
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if id == excluding {
			continue
		}
		if name, ok := r.names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

// OnlineIDs returns the client ids behind Online(excluding), in the same
// order, for callers that need to look up per-client data (like assigned
// color) alongside each name.
func (r *Registry) OnlineIDs(excluding ClientID) []ClientID {
	out := make([]ClientID, 0, len(r.order))
	for _, id := range r.order {
		if id == excluding {
			continue
		}
		if _, ok := r.names[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// AllIDs returns every registered client id, in insertion order, with no
// exclusion — used when building a full roster snapshot rather than an
// "others" view.
func (r *Registry) AllIDs() []ClientID {
	out := make([]ClientID, 0, len(r.order))
	for _, id := range r.order {
		if _, ok := r.names[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Remove drops id from every membership set, per spec.md §4.3's disconnect
// cascade. It reports whether id had a registered username (so the caller
// can decide whether to broadcast UserLeft) and, if id was host, the newly
// promoted successor (next authenticated client in insertion order).
func (r *Registry) Remove(id ClientID) (hadUsername bool, newHost ClientID, hostChanged bool) {
	delete(r.pending, id)
	_, hadUsername = r.names[id]
	delete(r.names, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.hostID != nil && *r.hostID == id {
		r.hostID = nil
		for _, candidate := range r.order {
			if _, ok := r.names[candidate]; ok {
				r.hostID = &candidate
				hostChanged = true
				newHost = candidate
				break
			}
		}
	}

	return hadUsername, newHost, hostChanged
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
