package conversation

import "slices"

// Transcript is the append-only, in-memory message log of one chat view.
type Transcript struct {
	messages []Message
}

func (t *Transcript) Append(m Message) {
	m.Sources = slices.Clone(m.Sources)
	t.messages = append(t.messages, m)
}

// Messages returns a copy in chronological order.
func (t *Transcript) Messages() []Message {
	return slices.Clone(t.messages)
}

func (t *Transcript) Len() int { return len(t.messages) }

func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
