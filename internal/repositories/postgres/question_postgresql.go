package postgres

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/mcq-bank-service/internal/cache"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

// List returns questions matching filter ordered by year then qNum
func (q *QuestionPostgreSQL) List(ctx context.Context, filter repositories.QuestionFilter) ([]models.Question, error) {
	return cache.CacheOrExecute(ctx, q.cacheManager.Question, listKey(filter), cache.QuestionCacheConfig.TTL, func() ([]models.Question, error) {
		query := q.db.WithContext(ctx).Model(&models.Question{})
		if filter.Years != nil {
			query = query.Where("year IN ?", repositories.YearsOrPlaceholder(filter.Years))
		}
		if filter.TopicID != nil {
			query = query.Where(jsonArrayContains("t_ids", *filter.TopicID))
		}

		var questions []models.Question
		if err := query.Order("year ASC").Order("q_num ASC").Find(&questions).Error; err != nil {
			return nil, fmt.Errorf("failed to list questions: %w", err)
		}
		return questions, nil
	})
}

func listKey(filter repositories.QuestionFilter) string {
	key := "list:"
	if filter.Years != nil {
		key += "years=" + intsKey(filter.Years) + ":"
	}
	if filter.TopicID != nil {
		key += fmt.Sprintf("topic=%d", *filter.TopicID)
	}
	return key
}

func (q *QuestionPostgreSQL) GetByQID(ctx context.Context, qID int64) (*models.Question, error) {
	return firstBy[models.Question](q.db.WithContext(ctx), "q_id", qID, "question")
}

// UpdateSubtopics replaces the stIds array of one question
func (q *QuestionPostgreSQL) UpdateSubtopics(ctx context.Context, qID int64, stIDs []int) error {
	question, err := q.GetByQID(ctx, qID)
	if err != nil {
		return err
	}

	if stIDs == nil {
		stIDs = []int{}
	}
	if err := q.db.WithContext(ctx).
		Model(&models.Question{ID: question.ID}).
		Update("st_ids", datatypes.JSONSlice[int](stIDs)).Error; err != nil {
		return fmt.Errorf("failed to update subtopics of question %d: %w", qID, err)
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager)
	return nil
}

func (q *QuestionPostgreSQL) Upsert(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	if err := q.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "q_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"year", "paper", "q_num", "q_text", "is_statements", "statements", "choices",
				"has_image", "t_ids", "st_ids", "ans", "hk_percent", "updated_at",
			}),
		}).
		CreateInBatches(&questions, 100).Error; err != nil {
		return fmt.Errorf("failed to upsert questions: %w", err)
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager)
	return nil
}
