package client

import (
	"chat-feed/domain"
	"fmt"
	"time"

	"github.com/gookit/color"
)

// Render formats a record for a terminal. Own messages are marked as outgoing and
// shown without a name; other senders are prefixed by their display name.
func Render(record domain.MessageRecord, self Identity, colours bool) string {
	at := record.CreatedAt.Local().Format(time.TimeOnly)
	if record.IsOutgoing(self.SenderID) {
		line := fmt.Sprintf("[%s] #%d > %s", at, record.SequenceID, record.Text)
		if colours {
			return color.New(color.FgCyan).Render(line)
		}
		return line
	}
	name := record.SenderDisplayName
	if name == "" {
		name = record.SenderID
	}
	if colours {
		name = color.New(color.FgGreen, color.OpBold).Render(name)
	}
	return fmt.Sprintf("[%s] #%d %s: %s", at, record.SequenceID, name, record.Text)
}
