package repositories

import (
	"context"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
)

// TopicRepository interface for the topics collection
type TopicRepository interface {
	// List returns every topic ordered by aristo then tId.
	List(ctx context.Context) ([]models.Topic, error)
	GetByTID(ctx context.Context, tID int) (*models.Topic, error)
	UpdateFields(ctx context.Context, tID int, fields TopicFields) error
	Upsert(ctx context.Context, topics []models.Topic) error
}

// SubtopicRepository interface for the subtopics collection
type SubtopicRepository interface {
	// ListByTopic returns the subtopics of a topic ordered by stSeq.
	ListByTopic(ctx context.Context, tID int) ([]models.Subtopic, error)
	GetByStID(ctx context.Context, stID int) (*models.Subtopic, error)
	// NextSequence returns max(stSeq)+1 for the topic. Inside a transaction it
	// serialises concurrent callers for the same topic until commit.
	NextSequence(ctx context.Context, tID int) (int, error)
	Create(ctx context.Context, subtopic *models.Subtopic) error
	UpdateTitles(ctx context.Context, stID int, titleC, titleE *string) error
	// Delete removes the subtopic only. Questions keep any stIds pointing at it.
	Delete(ctx context.Context, stID int) error
	Upsert(ctx context.Context, subtopics []models.Subtopic) error
}

// QuestionRepository interface for the questions collection
type QuestionRepository interface {
	// List returns questions matching filter ordered by year then qNum.
	List(ctx context.Context, filter QuestionFilter) ([]models.Question, error)
	GetByQID(ctx context.Context, qID int64) (*models.Question, error)
	// UpdateSubtopics replaces the whole stIds array of one question.
	UpdateSubtopics(ctx context.Context, qID int64, stIDs []int) error
	Upsert(ctx context.Context, questions []models.Question) error
}

// TextbookRepository interface for the textbooks collection
type TextbookRepository interface {
	List(ctx context.Context) ([]models.Textbook, error)
	GetByTbID(ctx context.Context, tbID string) (*models.Textbook, error)
	Exists(ctx context.Context, tbID string) (bool, error)
	Create(ctx context.Context, textbook *models.Textbook) error
	// Update writes every field except tbId onto the textbook identified by tbID.
	Update(ctx context.Context, tbID string, textbook *models.Textbook) error
	Delete(ctx context.Context, tbID string) error
	Upsert(ctx context.Context, textbooks []models.Textbook) error
}
