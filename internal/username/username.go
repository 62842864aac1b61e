// Package username implements username sanitization and the lobby's
// registry described in spec.md §4.3/§4.4: case-insensitive uniqueness, a
// reserved-name list, and host election.
//
// Sanitize is grounded on original_source/common/src/player.rs's
// sanitize_username; Registry is grounded on spec.md §4.3's Lobby
// description (no direct equivalent in the teacher, which uses free-text
// character names with no username-claim/host concept).
package username

import (
	"fmt"
	"strings"
)

// MaxLength is the maximum permitted username length, spec.md §4.11/§4.12.
const MaxLength = 16

// Error is returned by Sanitize on an invalid username, matching the
// original's UsernameError enum.
type Error struct {
	Kind    ErrorKind
	Invalid rune // set only when Kind == InvalidCharacter
}

// ErrorKind identifies the reason a username was rejected.
type ErrorKind int

const (
	Empty ErrorKind = iota
	TooLong
	InvalidCharacter
	Reserved
	Taken
)

func (e *Error) Error() string {
	switch e.Kind {
	case Empty:
		return "username cannot be empty"
	case TooLong:
		return "username is too long"
	case InvalidCharacter:
		return fmt.Sprintf("username contains invalid character %q", e.Invalid)
	case Reserved:
		return "username is reserved"
	case Taken:
		return "username is already taken"
	default:
		return "invalid username"
	}
}

var reserved = map[string]bool{
	"server": true,
	"admin":  true,
	"host":   true,
	"system": true,
	"you":    true,
}

// Sanitize trims input and validates it against spec.md §4.3 step 3: empty,
// too-long (>16 runes), non-alphanumeric/underscore/hyphen characters, and
// the reserved-name list are all rejected.
func Sanitize(input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	if trimmed == "" {
		return "", &Error{Kind: Empty}
	}

	if len([]rune(trimmed)) > MaxLength {
		return "", &Error{Kind: TooLong}
	}

	for _, r := range trimmed {
		if !isAllowed(r) {
			return "", &Error{Kind: InvalidCharacter, Invalid: r}
		}
	}

	if reserved[strings.ToLower(trimmed)] {
		return "", &Error{Kind: Reserved}
	}

	return trimmed, nil
}

func isAllowed(r rune) bool {
	isASCIILetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	isDigit := r >= '0' && r <= '9'
	return isASCIILetter || isDigit || r == '_' || r == '-'
}
