package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

func TestWatermillPublisher_PublishesEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, DefaultTopic)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	publisher := NewWatermillPublisher(pubSub, "", logger)
	event := NewEvent(SubtopicCreated, SubtopicData{TopicID: 101, SubtopicID: 10103, Sequence: 3})
	if err := publisher.Publish(ctx, event); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		if msg.UUID != event.ID {
			t.Errorf("Expected message uuid %s, got %s", event.ID, msg.UUID)
		}
		if got := msg.Metadata.Get("type"); got != SubtopicCreated {
			t.Errorf("Expected type metadata %s, got %s", SubtopicCreated, got)
		}

		var decoded struct {
			Type    string       `json:"type"`
			Source  string       `json:"source"`
			Version string       `json:"version"`
			Data    SubtopicData `json:"data"`
		}
		if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		if decoded.Source != EventSource || decoded.Version != EventVersion {
			t.Errorf("Unexpected envelope %+v", decoded)
		}
		if decoded.Data.SubtopicID != 10103 {
			t.Errorf("Expected stId 10103, got %d", decoded.Data.SubtopicID)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for message")
	}
}

func TestNewEventPublisher_DefaultsToGoChannel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher, err := NewEventPublisher(Config{}, logger)
	if err != nil {
		t.Fatalf("Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	if publisher.topic != DefaultTopic {
		t.Errorf("Expected topic %s, got %s", DefaultTopic, publisher.topic)
	}
	// No subscribers: gochannel drops the message without error.
	if err := publisher.Publish(context.Background(), NewEvent(TextbookDeleted, TextbookData{TextbookID: "X"})); err != nil {
		t.Errorf("Expected publish without subscribers to succeed, got %v", err)
	}
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	_ = mock.Publish(context.Background(), NewEvent(TopicsUpdated, TopicsUpdatedData{TopicIDs: []int{1}}))

	events := mock.GetPublishedEvents()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].ID == "" || events[0].Timestamp.IsZero() {
		t.Error("Expected event id and timestamp to be set")
	}

	mock.ClearEvents()
	if len(mock.GetPublishedEvents()) != 0 {
		t.Error("Expected no events after ClearEvents")
	}
}
