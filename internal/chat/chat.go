// Package chat implements chat message validation and relay, per spec.md
// §4.3 Lobby step 4 and §4.9's universal sanitizer.
//
// Grounded on spec.md §4.3.4/§4.9; the teacher's chat_type.go supplies the
// naming convention for a message-length constant (MaxMessageLength) but
// none of its multi-channel vocabulary applies here — mazenet has exactly
// one broadcast channel, not Lineage 2's twenty-two.
package chat

import (
	"strings"

	"github.com/mazenet/mazenet/internal/sanitize"
)

// MaxMessageBytes is the maximum permitted chat payload size, spec.md §4.11
// MAX_CHAT_MESSAGE_BYTES.
const MaxMessageBytes = 256

// Prepare sanitizes and trims text for broadcast, per spec.md §4.3 step 4:
// run the universal sanitizer, trim, and report ok=false if the result is
// empty or exceeds MaxMessageBytes.
func Prepare(text string) (content string, ok bool) {
	content = strings.TrimSpace(sanitize.String(text))
	if content == "" || len(content) > MaxMessageBytes {
		return "", false
	}
	return content, true
}
