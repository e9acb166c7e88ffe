package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/mcq-bank-service/internal/editor"
	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

type assignmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssignmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *assignmentService) Load(ctx context.Context, tID int) (*AssignmentBoard, error) {
	topic, err := s.repo.Topic().GetByTID(ctx, tID)
	if err != nil {
		return nil, mapNotFound(err, ErrTopicNotFound)
	}
	subtopics, err := s.repo.Subtopic().ListByTopic(ctx, tID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subtopics: %w", err)
	}
	questions, err := s.questionsFor(ctx, tID)
	if err != nil {
		return nil, err
	}
	return &AssignmentBoard{Topic: topic, Subtopics: subtopics, Questions: questions}, nil
}

// Save replaces the stIds of every edited question in one transaction. With
// no pending edits nothing is written. On failure edits are kept for a retry.
func (s *assignmentService) Save(ctx context.Context, tID int, edits *editor.Assignments) ([]models.Question, error) {
	if edits.Len() == 0 {
		s.logger.Debug("No assignment changes to save", "t_id", tID)
		return s.questionsFor(ctx, tID)
	}

	entries := edits.Entries()
	s.logger.Info("Saving subtopic assignments", "t_id", tID, "count", len(entries))

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, entry := range entries {
			if err := tx.Question().UpdateSubtopics(ctx, entry.QID, entry.STIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to save assignments", "t_id", tID, "error", err)
		return nil, fmt.Errorf("failed to save assignments: %w", mapNotFound(err, ErrQuestionNotFound))
	}

	edits.Clear()

	qIDs := make([]int64, len(entries))
	for i, entry := range entries {
		qIDs[i] = entry.QID
	}
	publishEvent(ctx, s.publisher, s.logger, events.AssignmentsSaved, events.AssignmentsSavedData{TopicID: tID, QuestionIDs: qIDs})

	return s.questionsFor(ctx, tID)
}

func (s *assignmentService) SaveRequest(ctx context.Context, tID int, req *AssignmentSaveRequest) ([]models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	edits := editor.NewAssignments()
	for _, entry := range req.Assignments {
		edits.Set(entry.QID, entry.STIDs)
	}
	return s.Save(ctx, tID, edits)
}

func (s *assignmentService) questionsFor(ctx context.Context, tID int) ([]models.Question, error) {
	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilter{TopicID: &tID})
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	return questions, nil
}
