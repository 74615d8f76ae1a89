package heartbeat

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/openshift-online/heartbeat/pkg/constants"
	"github.com/openshift-online/heartbeat/pkg/errors"
)

// ParseHeartbeat extracts the server identifier from a heartbeat payload. The payload is decoded
// lossily, surrounding whitespace is dropped and what remains must be a canonical hyphenated
// identifier such as 11111111-1111-1111-1111-111111111111.
func ParseHeartbeat(payload []byte) (uuid.UUID, error) {
	text := string(payload)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	text = strings.TrimSpace(text)

	if len(text) != constants.HeartbeatIDLength {
		return uuid.Nil, errors.ParseError("invalid heartbeat %q: expected %d characters, got %d",
			truncate(text), constants.HeartbeatIDLength, len(text))
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, errors.ParseError("invalid heartbeat %q: %v", text, err)
	}
	return id, nil
}

// truncate keeps log lines short when someone sends garbage.
func truncate(text string) string {
	const maxLen = 64
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
