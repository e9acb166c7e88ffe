package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "mcq-bank-service"
	EventVersion = "1.0"
)

// Event types published after a successful commit.
const (
	TopicsUpdated      = "topic.batch_updated"
	SubtopicCreated    = "subtopic.created"
	SubtopicUpdated    = "subtopic.updated"
	SubtopicDeleted    = "subtopic.deleted"
	AssignmentsSaved   = "question.subtopics_assigned"
	TextbookCreated    = "textbook.created"
	TextbookUpdated    = "textbook.updated"
	TextbookDeleted    = "textbook.deleted"
	WorksheetGenerated = "worksheet.generated"
)

// Event is the envelope for every change notification.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// ===== EVENT PAYLOADS =====

type TopicsUpdatedData struct {
	TopicIDs []int `json:"tIds"`
}

type SubtopicData struct {
	TopicID    int `json:"tId"`
	SubtopicID int `json:"stId"`
	Sequence   int `json:"stSeq,omitempty"`
}

type AssignmentsSavedData struct {
	TopicID     int     `json:"tId"`
	QuestionIDs []int64 `json:"qIds"`
}

type TextbookData struct {
	TextbookID string `json:"tbId"`
}

type WorksheetData struct {
	TopicIDs  []int `json:"tIds"`
	Years     []int `json:"years"`
	Questions int   `json:"questions"`
}
