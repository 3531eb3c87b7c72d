package core

import (
	"fmt"
	"time"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one entry of the conversation log. Messages are never edited.
type Message struct {
	ID              int64     `json:"id"`
	Text            string    `json:"text"`
	Sender          Sender    `json:"sender"`
	Timestamp       time.Time `json:"timestamp"`
	URL             string    `json:"url,omitempty"`
	Title           string    `json:"title,omitempty"`
	Personality     string    `json:"personality,omitempty"`
	UserContributed bool      `json:"user_contributed,omitempty"`
}

// Status is the transient state of a session.
type Status string

const (
	StatusOnline     Status = "ONLINE"
	StatusProcessing Status = "PROCESSING"
	StatusLearning   Status = "LEARNING"
	StatusError      Status = "ERROR"
)

// EventType represents the kind of change in a session.
type EventType string

const (
	EventMessage EventType = "MESSAGE"
	EventStatus  EventType = "STATUS"
)

// Event represents a change in the session.
// Message is set for EventMessage, Status for EventStatus.
type Event struct {
	Type      EventType
	Message   *Message
	Status    Status
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e.Type {
	case EventMessage:
		if e.Message != nil {
			return fmt.Sprintf("%s #%d (%s)", e.Type, e.Message.ID, e.Message.Sender)
		}
	case EventStatus:
		return fmt.Sprintf("%s %s", e.Type, e.Status)
	}
	return string(e.Type)
}
