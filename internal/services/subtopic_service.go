package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

// MaxSubtopicsPerTopic keeps stId = tId*100 + stSeq unambiguous.
const MaxSubtopicsPerTopic = 99

type subtopicService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubtopicService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) SubtopicService {
	return &subtopicService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *subtopicService) List(ctx context.Context, tID int) ([]models.Subtopic, error) {
	subtopics, err := s.repo.Subtopic().ListByTopic(ctx, tID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtopics: %w", err)
	}
	return subtopics, nil
}

// Create allocates the next sequence number and inserts the subtopic in one
// transaction.
func (s *subtopicService) Create(ctx context.Context, tID int, req *CreateSubtopicRequest) (*models.Subtopic, error) {
	s.logger.Info("Creating subtopic", "t_id", tID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	titleC := strings.TrimSpace(req.TitleC)
	titleE := strings.TrimSpace(req.TitleE)

	var created models.Subtopic
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		seq, err := tx.Subtopic().NextSequence(ctx, tID)
		if err != nil {
			return err
		}
		if seq > MaxSubtopicsPerTopic {
			return NewValidationError("stSeq", fmt.Sprintf("topic already has %d subtopics", MaxSubtopicsPerTopic), seq)
		}

		created = models.Subtopic{
			TID:    tID,
			STSeq:  seq,
			STID:   models.SubtopicID(tID, seq),
			TitleC: &titleC,
			TitleE: &titleE,
		}
		return tx.Subtopic().Create(ctx, &created)
	})
	if err != nil {
		s.logger.Error("Failed to create subtopic", "t_id", tID, "error", err)
		return nil, fmt.Errorf("failed to create subtopic: %w", mapNotFound(err, ErrTopicNotFound))
	}

	s.logger.Info("Subtopic created", "t_id", tID, "st_id", created.STID, "st_seq", created.STSeq)
	publishEvent(ctx, s.publisher, s.logger, events.SubtopicCreated, events.SubtopicData{
		TopicID:    tID,
		SubtopicID: created.STID,
		Sequence:   created.STSeq,
	})

	return &created, nil
}

// Update writes the titles of one subtopic. Omitted titles keep their value;
// a blank title clears it.
func (s *subtopicService) Update(ctx context.Context, stID int, req *UpdateSubtopicRequest) (*models.Subtopic, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Subtopic().GetByStID(ctx, stID)
	if err != nil {
		return nil, mapNotFound(err, ErrSubtopicNotFound)
	}

	titleC, titleE := existing.TitleC, existing.TitleE
	if req.TitleC != nil {
		titleC = trimmedOrNil(*req.TitleC)
	}
	if req.TitleE != nil {
		titleE = trimmedOrNil(*req.TitleE)
	}

	if err := s.repo.Subtopic().UpdateTitles(ctx, stID, titleC, titleE); err != nil {
		return nil, fmt.Errorf("failed to update subtopic: %w", mapNotFound(err, ErrSubtopicNotFound))
	}

	existing.TitleC, existing.TitleE = titleC, titleE
	publishEvent(ctx, s.publisher, s.logger, events.SubtopicUpdated, events.SubtopicData{
		TopicID:    existing.TID,
		SubtopicID: stID,
	})
	return existing, nil
}

func (s *subtopicService) Delete(ctx context.Context, stID int) error {
	s.logger.Info("Deleting subtopic", "st_id", stID)

	existing, err := s.repo.Subtopic().GetByStID(ctx, stID)
	if err != nil {
		return mapNotFound(err, ErrSubtopicNotFound)
	}
	if err := s.repo.Subtopic().Delete(ctx, stID); err != nil {
		return fmt.Errorf("failed to delete subtopic: %w", mapNotFound(err, ErrSubtopicNotFound))
	}

	publishEvent(ctx, s.publisher, s.logger, events.SubtopicDeleted, events.SubtopicData{
		TopicID:    existing.TID,
		SubtopicID: stID,
	})
	return nil
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
