package notify

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Game coordinator message types the bot reacts to.
const (
	MsgClientDisplayNotification uint32 = 1153
	MsgClientWelcome             uint32 = 4004
	MsgClientGoodbye             uint32 = 4008
)

// DisplayNotification is the payload of a display notification message.
type DisplayNotification struct {
	TitleKey string
	BodyKey  string
	Keys     []string // Placeholder names
	Values   []string // Placeholder values, paired with Keys by index
}

// Replacements pairs Keys with Values. Unpaired entries are dropped; a
// repeated key keeps its last value.
func (n DisplayNotification) Replacements() map[string]string {
	size := min(len(n.Keys), len(n.Values))

	out := make(map[string]string, size)
	for i := range size {
		out[n.Keys[i]] = n.Values[i]
	}

	return out
}

// DecodeDisplayNotification decodes a CMsgGCClientDisplayNotification body.
func DecodeDisplayNotification(b []byte) (DisplayNotification, error) {
	var n DisplayNotification

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType || num < 1 || num > 4 {
			return protowire.ConsumeFieldValue(num, typ, b)
		}

		v, m := protowire.ConsumeString(b)
		if m < 0 {
			return m
		}

		switch num {
		case 1:
			n.TitleKey = v
		case 2:
			n.BodyKey = v
		case 3:
			n.Keys = append(n.Keys, v)
		case 4:
			n.Values = append(n.Values, v)
		}

		return m
	})
	if err != nil {
		return DisplayNotification{}, fmt.Errorf("decoding display notification: %w", err)
	}

	return n, nil
}

// DecodeWelcomeVersion reads the version field of a CMsgClientWelcome body.
func DecodeWelcomeVersion(b []byte) (uint32, error) {
	var version uint32

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 || typ != protowire.VarintType {
			return protowire.ConsumeFieldValue(num, typ, b)
		}

		v, m := protowire.ConsumeVarint(b)
		version = uint32(v) //nolint:gosec // field is declared uint32

		return m
	})
	if err != nil {
		return 0, fmt.Errorf("decoding welcome: %w", err)
	}

	return version, nil
}

// walkFields calls fn for each field of a protobuf message. fn consumes the
// field value and returns the number of bytes read, negative on error.
func walkFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedMessage, protowire.ParseError(n))
		}

		b = b[n:]

		m := fn(num, typ, b)
		if m < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedMessage, num, protowire.ParseError(m))
		}

		b = b[m:]
	}

	return nil
}
