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

type TopicPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTopicPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.TopicRepository {
	return &TopicPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

// List returns all topics ordered by aristo chapter, then tId
func (t *TopicPostgreSQL) List(ctx context.Context) ([]models.Topic, error) {
	return cache.CacheOrExecute(ctx, t.cacheManager.Topic, "list", cache.TopicCacheConfig.TTL, func() ([]models.Topic, error) {
		var topics []models.Topic
		if err := t.db.WithContext(ctx).
			Order("COALESCE(aristo, 0) ASC").
			Order("t_id ASC").
			Find(&topics).Error; err != nil {
			return nil, fmt.Errorf("failed to list topics: %w", err)
		}
		return topics, nil
	})
}

// GetByTID resolves a topic by its domain id
func (t *TopicPostgreSQL) GetByTID(ctx context.Context, tID int) (*models.Topic, error) {
	return firstBy[models.Topic](t.db.WithContext(ctx), "t_id", tID, "topic")
}

// UpdateFields writes only the given columns of one topic
func (t *TopicPostgreSQL) UpdateFields(ctx context.Context, tID int, fields repositories.TopicFields) error {
	if len(fields) == 0 {
		return nil
	}

	topic, err := t.GetByTID(ctx, tID)
	if err != nil {
		return err
	}

	if err := t.db.WithContext(ctx).
		Model(&models.Topic{ID: topic.ID}).
		Updates(map[string]any(fields)).Error; err != nil {
		return fmt.Errorf("failed to update topic %d: %w", tID, err)
	}

	cache.InvalidateTopicCache(ctx, t.cacheManager, tID)
	return nil
}

// Upsert inserts topics or overwrites them by tId
func (t *TopicPostgreSQL) Upsert(ctx context.Context, topics []models.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	if err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "t_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"t_title_e", "t_title_c", "is_junior", "aristo", "updated_at"}),
		}).
		Create(&topics).Error; err != nil {
		return fmt.Errorf("failed to upsert topics: %w", err)
	}

	cache.SafeDelete(ctx, t.cacheManager.Topic, "list")
	return nil
}
