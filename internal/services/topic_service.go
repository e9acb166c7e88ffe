package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/mcq-bank-service/internal/editor"
	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

type topicService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTopicService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) TopicService {
	return &topicService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *topicService) List(ctx context.Context) ([]models.Topic, error) {
	topics, err := s.repo.Topic().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

func (s *topicService) Get(ctx context.Context, tID int) (*models.Topic, error) {
	topic, err := s.repo.Topic().GetByTID(ctx, tID)
	if err != nil {
		return nil, mapNotFound(err, ErrTopicNotFound)
	}
	return topic, nil
}

func (s *topicService) LoadSnapshot(ctx context.Context) (*editor.TopicSnapshot, error) {
	topics, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return editor.NewTopicSnapshot(topics), nil
}

// Save writes a partial update for every changed topic in one transaction.
// On failure the snapshot keeps its working state and stays dirty.
func (s *topicService) Save(ctx context.Context, snapshot *editor.TopicSnapshot) (*models.SaveResult, error) {
	changes := snapshot.Changed()
	if len(changes) == 0 {
		s.logger.Debug("No topic changes to save")
		return &models.SaveResult{}, nil
	}

	s.logger.Info("Saving topic changes", "count", len(changes))

	tIDs := make([]int, 0, len(changes))
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, change := range changes {
			fields := editor.TopicChanges(change.Before, change.After)
			if err := tx.Topic().UpdateFields(ctx, change.After.TID, fields); err != nil {
				return err
			}
			tIDs = append(tIDs, change.After.TID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to save topics", "error", err)
		return nil, fmt.Errorf("failed to save topics: %w", mapNotFound(err, ErrTopicNotFound))
	}

	snapshot.Commit()
	publishEvent(ctx, s.publisher, s.logger, events.TopicsUpdated, events.TopicsUpdatedData{TopicIDs: tIDs})

	return &models.SaveResult{Updated: len(tIDs)}, nil
}

// SaveEdits applies submitted working copies to a fresh snapshot and saves
// the difference. Unparseable aristo input is logged and left unchanged.
func (s *topicService) SaveEdits(ctx context.Context, req *TopicSaveRequest) (*models.SaveResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, edit := range req.Topics {
		topic, ok := snapshot.Get(edit.TID)
		if !ok {
			return nil, fmt.Errorf("%w: tId %d", ErrTopicNotFound, edit.TID)
		}
		if edit.TitleE != nil {
			topic.TitleE = *edit.TitleE
		}
		if edit.TitleC != nil {
			topic.TitleC = *edit.TitleC
		}
		if edit.IsJunior != nil {
			topic.IsJunior = *edit.IsJunior
		}
		if edit.Aristo != nil {
			aristo, err := editor.ParseAristo(*edit.Aristo)
			switch {
			case errors.Is(err, editor.ErrInvalidAristo):
				s.logger.Warn("Skipping invalid aristo value", "t_id", edit.TID, "value", *edit.Aristo)
			case err == nil:
				topic.Aristo = aristo
			}
		}
		snapshot.Set(topic)
	}

	return s.Save(ctx, snapshot)
}
