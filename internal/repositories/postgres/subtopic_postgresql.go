package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/mcq-bank-service/internal/cache"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

type SubtopicPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewSubtopicPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.SubtopicRepository {
	return &SubtopicPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

// ListByTopic returns the subtopics of a topic ordered by stSeq
func (s *SubtopicPostgreSQL) ListByTopic(ctx context.Context, tID int) ([]models.Subtopic, error) {
	key := fmt.Sprintf("topic:%d", tID)
	return cache.CacheOrExecute(ctx, s.cacheManager.Subtopic, key, cache.SubtopicCacheConfig.TTL, func() ([]models.Subtopic, error) {
		var subtopics []models.Subtopic
		if err := s.db.WithContext(ctx).
			Where("t_id = ?", tID).
			Order("st_seq ASC").
			Find(&subtopics).Error; err != nil {
			return nil, fmt.Errorf("failed to list subtopics: %w", err)
		}
		return subtopics, nil
	})
}

func (s *SubtopicPostgreSQL) GetByStID(ctx context.Context, stID int) (*models.Subtopic, error) {
	return firstBy[models.Subtopic](s.db.WithContext(ctx), "st_id", stID, "subtopic")
}

// NextSequence locks the owning topic row and returns max(stSeq)+1. The lock is
// held until the surrounding transaction ends, so concurrent creators for the
// same topic are serialised.
func (s *SubtopicPostgreSQL) NextSequence(ctx context.Context, tID int) (int, error) {
	db := s.db.WithContext(ctx)

	var topics []models.Topic
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("t_id = ?", tID).
		Limit(1).
		Find(&topics).Error; err != nil {
		return 0, fmt.Errorf("failed to lock topic %d: %w", tID, err)
	}
	if len(topics) == 0 {
		return 0, repositories.NotFound("topic", tID)
	}

	var last int
	if err := db.Model(&models.Subtopic{}).
		Where("t_id = ?", tID).
		Select("COALESCE(MAX(st_seq), 0)").
		Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("failed to read last subtopic sequence: %w", err)
	}

	return last + 1, nil
}

func (s *SubtopicPostgreSQL) Create(ctx context.Context, subtopic *models.Subtopic) error {
	if err := s.db.WithContext(ctx).Create(subtopic).Error; err != nil {
		return translateWriteError(err, "create subtopic")
	}

	cache.InvalidateSubtopicCache(ctx, s.cacheManager, subtopic.TID)
	return nil
}

// UpdateTitles writes both titles of one subtopic; nil clears a title
func (s *SubtopicPostgreSQL) UpdateTitles(ctx context.Context, stID int, titleC, titleE *string) error {
	subtopic, err := s.GetByStID(ctx, stID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Subtopic{ID: subtopic.ID}).
		Updates(map[string]any{"st_title_c": titleC, "st_title_e": titleE}).Error; err != nil {
		return fmt.Errorf("failed to update subtopic %d: %w", stID, err)
	}

	cache.InvalidateSubtopicCache(ctx, s.cacheManager, subtopic.TID)
	return nil
}

// Delete removes one subtopic. Questions referencing it are left untouched.
func (s *SubtopicPostgreSQL) Delete(ctx context.Context, stID int) error {
	subtopic, err := s.GetByStID(ctx, stID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Subtopic{}, subtopic.ID).Error; err != nil {
		return fmt.Errorf("failed to delete subtopic %d: %w", stID, err)
	}

	cache.InvalidateSubtopicCache(ctx, s.cacheManager, subtopic.TID)
	return nil
}

func (s *SubtopicPostgreSQL) Upsert(ctx context.Context, subtopics []models.Subtopic) error {
	if len(subtopics) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "st_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"st_title_c", "st_title_e", "updated_at"}),
		}).
		Create(&subtopics).Error; err != nil {
		return fmt.Errorf("failed to upsert subtopics: %w", err)
	}

	for _, st := range subtopics {
		cache.InvalidateSubtopicCache(ctx, s.cacheManager, st.TID)
	}
	return nil
}
