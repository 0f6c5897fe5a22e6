package domain

import (
	"chat-feed/errors"
	"fmt"
	"strconv"
	"strings"
)

const nowToken = "now"

// Cursor marks the position a subscription starts after.
// The zero value is the start of the log; Now resolves to the tail at registration.
type Cursor struct {
	seq uint64
	now bool
}

// Now is the cursor of a subscriber interested only in future records.
var Now = Cursor{now: true}

// After returns a cursor positioned on seq: records with a greater sequence id are delivered.
func After(seq uint64) Cursor {
	return Cursor{seq: seq}
}

func (c Cursor) IsNow() bool { return c.now }

// Seq is meaningless when IsNow is true.
func (c Cursor) Seq() uint64 { return c.seq }

func (c Cursor) String() string {
	if c.now {
		return nowToken
	}
	return strconv.FormatUint(c.seq, 10)
}

// ParseCursor accepts "now", an empty string (also now) or a decimal sequence id.
func ParseCursor(raw string) (Cursor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, nowToken) {
		return Now, nil
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid cursor %q", errors.ErrValidation, raw)
	}
	return After(seq), nil
}
