// Package conversation holds the chat transcript shown by the chat tab.
package conversation

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/arxivcs/internal/api"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ErrorReply is the bot message appended when a chat request fails.
const ErrorReply = "Sorry, I encountered an error processing your request. Please try again later."

// Message is immutable once appended to a Transcript.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	// Image is a resolved URL, never a bare filename.
	Image   string
	IsError bool
	Sources []api.Source
}

func NewUserMessage(content string, now time.Time) Message {
	return Message{ID: uuid.NewString(), Role: RoleUser, Content: content, Timestamp: now}
}

// NewBotMessage builds the reply for resp. resolve maps the backend's image
// filename to a URL.
func NewBotMessage(resp api.ChatResponse, resolve func(string) string, now time.Time) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleBot,
		Content:   resp.Response,
		Timestamp: now,
		Sources:   slices.Clone(resp.Sources),
	}
	if name := strings.TrimSpace(resp.Image); name != "" && resolve != nil {
		msg.Image = resolve(name)
	}
	return msg
}

func NewErrorMessage(now time.Time) Message {
	return Message{ID: uuid.NewString(), Role: RoleBot, Content: ErrorReply, Timestamp: now, IsError: true}
}
