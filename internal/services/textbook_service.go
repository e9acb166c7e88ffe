package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/mcq-bank-service/internal/editor"
	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

type textbookService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewTextbookService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) TextbookService {
	return &textbookService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *textbookService) List(ctx context.Context) ([]models.Textbook, error) {
	textbooks, err := s.repo.Textbook().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list textbooks: %w", err)
	}
	return textbooks, nil
}

func (s *textbookService) Get(ctx context.Context, tbID string) (*models.Textbook, error) {
	textbook, err := s.repo.Textbook().GetByTbID(ctx, tbID)
	if err != nil {
		return nil, mapNotFound(err, ErrTextbookNotFound)
	}
	return textbook, nil
}

// Chapters returns the textbook's chapters ordered by cNum.
func (s *textbookService) Chapters(ctx context.Context, tbID string) ([]models.Chapter, error) {
	textbook, err := s.Get(ctx, tbID)
	if err != nil {
		return nil, err
	}
	chapters := append([]models.Chapter{}, textbook.Chapters...)
	editor.SortChapters(chapters)
	return chapters, nil
}

func (s *textbookService) NewDraft() models.Textbook {
	return editor.NewDraft(s.now())
}

func (s *textbookService) Save(ctx context.Context, currentID string, req *SaveTextbookRequest) (*models.Textbook, error) {
	req.TbID = editor.NormalizeTextbookID(req.TbID)
	if errs := s.validator.GetBusinessValidator().ValidateTextbookSave(req); len(errs) > 0 {
		return nil, errs
	}

	textbook := textbookFromRequest(req)
	if editor.IsTemporaryID(currentID) {
		return s.promote(ctx, currentID, textbook)
	}
	return s.update(ctx, currentID, textbook)
}

// promote persists a draft under its chosen id after a collision check.
func (s *textbookService) promote(ctx context.Context, draftID string, textbook *models.Textbook) (*models.Textbook, error) {
	s.logger.Info("Creating textbook", "draft_id", draftID, "tb_id", textbook.TbID)

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		exists, err := tx.Textbook().Exists(ctx, textbook.TbID)
		if err != nil {
			return err
		}
		if exists {
			return ErrTextbookExists
		}
		return tx.Textbook().Create(ctx, textbook)
	})
	if repositories.IsDuplicateError(err) {
		err = ErrTextbookExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create textbook %s: %w", textbook.TbID, err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.TextbookCreated, events.TextbookData{TextbookID: textbook.TbID})
	return textbook, nil
}

func (s *textbookService) update(ctx context.Context, tbID string, textbook *models.Textbook) (*models.Textbook, error) {
	if textbook.TbID != tbID {
		return nil, fmt.Errorf("%w: %s to %s", ErrTextbookIDChanged, tbID, textbook.TbID)
	}

	s.logger.Info("Updating textbook", "tb_id", tbID)
	if err := s.repo.Textbook().Update(ctx, tbID, textbook); err != nil {
		return nil, fmt.Errorf("failed to update textbook %s: %w", tbID, mapNotFound(err, ErrTextbookNotFound))
	}

	publishEvent(ctx, s.publisher, s.logger, events.TextbookUpdated, events.TextbookData{TextbookID: tbID})
	return s.Get(ctx, tbID)
}

// Delete drops a draft without touching the store. A persisted textbook that
// is already gone counts as deleted.
func (s *textbookService) Delete(ctx context.Context, tbID string) error {
	if editor.IsTemporaryID(tbID) {
		s.logger.Debug("Discarding unsaved textbook", "tb_id", tbID)
		return nil
	}

	s.logger.Info("Deleting textbook", "tb_id", tbID)
	err := s.repo.Textbook().Delete(ctx, tbID)
	if repositories.IsNotFoundError(err) {
		s.logger.Warn("Textbook to delete was not found", "tb_id", tbID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete textbook %s: %w", tbID, err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.TextbookDeleted, events.TextbookData{TextbookID: tbID})
	return nil
}

func textbookFromRequest(req *SaveTextbookRequest) *models.Textbook {
	textbook := &models.Textbook{
		TbID:      req.TbID,
		TitleC:    req.TitleC,
		TitleE:    req.TitleE,
		Publisher: req.Publisher,
		IsJunior:  req.IsJunior,
		Chapters:  make([]models.Chapter, len(req.Chapters)),
	}
	for i, ch := range req.Chapters {
		textbook.Chapters[i] = models.Chapter{CNum: ch.CNum, TitleC: ch.TitleC, TitleE: ch.TitleE}
	}
	return textbook
}
