package domain

import (
	"chat-feed/errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PostMessageCommand is what a sender submits. Identity is supplied by the caller,
// the feed never generates or remembers it.
type PostMessageCommand struct {
	SenderID          string `validate:"required"`
	SenderDisplayName string
	Text              string `validate:"required"`
}

// Normalize trims the identity fields. Text is kept as typed.
func (c PostMessageCommand) Normalize() PostMessageCommand {
	return PostMessageCommand{
		SenderID:          strings.TrimSpace(c.SenderID),
		SenderDisplayName: strings.TrimSpace(c.SenderDisplayName),
		Text:              c.Text,
	}
}

// Validate rejects a command whose text is empty once trimmed, whose sender id is missing,
// or whose text exceeds maxLength runes. A maxLength <= 0 disables the length check.
func (c PostMessageCommand) Validate(maxLength int) error {
	n := c.Normalize()
	n.Text = strings.TrimSpace(n.Text)
	if err := validate.Struct(n); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	if maxLength > 0 && len([]rune(n.Text)) > maxLength {
		return fmt.Errorf("%w: text longer than %d characters", errors.ErrValidation, maxLength)
	}
	return nil
}

// GetMessageCommand asks for the last N records of the feed.
type GetMessageCommand struct {
	Last int
}

func (c GetMessageCommand) Validate() error {
	if c.Last <= 0 {
		return fmt.Errorf("%w: last must be a positive integer, got %d", errors.ErrValidation, c.Last)
	}
	return nil
}
