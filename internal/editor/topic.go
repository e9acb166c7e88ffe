package editor

import (
	"errors"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

// ErrInvalidAristo is returned for aristo input that is neither empty nor an integer.
var ErrInvalidAristo = errors.New("aristo must be a whole number")

// TopicSnapshot is the editable topic list keyed by tId.
type TopicSnapshot = Snapshot[int, models.Topic]

// NewTopicSnapshot snapshots topics for editing.
func NewTopicSnapshot(topics []models.Topic) *TopicSnapshot {
	return NewSnapshot(topics,
		func(t models.Topic) int { return t.TID },
		func(a, b models.Topic) bool { return len(TopicChanges(a, b)) == 0 },
		models.Topic.Clone,
	)
}

// TopicChanges returns only the tracked columns that differ between base and
// work. Aristo values compare equal when both are unset.
func TopicChanges(base, work models.Topic) repositories.TopicFields {
	fields := repositories.TopicFields{}
	if base.TitleE != work.TitleE {
		fields[repositories.TopicFieldTitleE] = work.TitleE
	}
	if base.TitleC != work.TitleC {
		fields[repositories.TopicFieldTitleC] = work.TitleC
	}
	if base.IsJunior != work.IsJunior {
		fields[repositories.TopicFieldIsJunior] = work.IsJunior
	}
	if !sameAristo(base.Aristo, work.Aristo) {
		fields[repositories.TopicFieldAristo] = work.Aristo
	}
	return fields
}

func sameAristo(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ParseAristo reads the aristo field as typed by the user. Blank input means no value.
func ParseAristo(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, ErrInvalidAristo
	}
	return &n, nil
}
