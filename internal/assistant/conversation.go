// ABOUTME: Chat conversation state for the nutrition assistant.
// ABOUTME: Keeps the message log with sequential IDs, seeded with the greeting.
package assistant

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyMessage is returned when the user sends only whitespace.
var ErrEmptyMessage = errors.New("message is empty")

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one chat line.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a chat session. It is not safe for concurrent use.
type Conversation struct {
	messages []Message
	now      func() time.Time
}

// NewConversation starts a conversation with the greeting.
func NewConversation() *Conversation {
	c := &Conversation{now: time.Now}
	c.append(Greeting, SenderBot)
	return c
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// Send records the user's text and the assistant's reply, returning the reply.
func (c *Conversation) Send(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	c.append(text, SenderUser)
	return c.append(Respond(text), SenderBot), nil
}

func (c *Conversation) append(text string, sender Sender) Message {
	m := Message{
		ID:        len(c.messages) + 1,
		Text:      text,
		Sender:    sender,
		Timestamp: c.now(),
	}
	c.messages = append(c.messages, m)
	return m
}
