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

type TextbookPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTextbookPostgreSQL(db *gorm.DB, cm *cache.CacheManager) repositories.TextbookRepository {
	return &TextbookPostgreSQL{
		db:           db,
		cacheManager: cm,
	}
}

func (t *TextbookPostgreSQL) List(ctx context.Context) ([]models.Textbook, error) {
	return cache.CacheOrExecute(ctx, t.cacheManager.Textbook, "list", cache.TextbookCacheConfig.TTL, func() ([]models.Textbook, error) {
		var textbooks []models.Textbook
		if err := t.db.WithContext(ctx).Order("tb_id ASC").Find(&textbooks).Error; err != nil {
			return nil, fmt.Errorf("failed to list textbooks: %w", err)
		}
		return textbooks, nil
	})
}

// GetByTbID resolves a textbook by its domain id
func (t *TextbookPostgreSQL) GetByTbID(ctx context.Context, tbID string) (*models.Textbook, error) {
	return firstBy[models.Textbook](t.db.WithContext(ctx), "tb_id", tbID, "textbook")
}

func (t *TextbookPostgreSQL) Exists(ctx context.Context, tbID string) (bool, error) {
	var count int64
	if err := t.db.WithContext(ctx).
		Model(&models.Textbook{}).
		Where("tb_id = ?", tbID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check textbook %s: %w", tbID, err)
	}
	return count > 0, nil
}

func (t *TextbookPostgreSQL) Create(ctx context.Context, textbook *models.Textbook) error {
	if err := t.db.WithContext(ctx).Create(textbook).Error; err != nil {
		return translateWriteError(err, "create textbook")
	}

	cache.InvalidateTextbookCache(ctx, t.cacheManager, textbook.TbID)
	return nil
}

// Update overwrites everything except tbId
func (t *TextbookPostgreSQL) Update(ctx context.Context, tbID string, textbook *models.Textbook) error {
	existing, err := t.GetByTbID(ctx, tbID)
	if err != nil {
		return err
	}

	if err := t.db.WithContext(ctx).
		Model(&models.Textbook{ID: existing.ID}).
		Updates(map[string]any{
			"tb_title_c": textbook.TitleC,
			"tb_title_e": textbook.TitleE,
			"publisher":  textbook.Publisher,
			"is_junior":  textbook.IsJunior,
			"chapters":   textbook.Chapters,
		}).Error; err != nil {
		return fmt.Errorf("failed to update textbook %s: %w", tbID, err)
	}

	cache.InvalidateTextbookCache(ctx, t.cacheManager, tbID)
	return nil
}

func (t *TextbookPostgreSQL) Delete(ctx context.Context, tbID string) error {
	existing, err := t.GetByTbID(ctx, tbID)
	if err != nil {
		return err
	}

	if err := t.db.WithContext(ctx).Delete(&models.Textbook{}, existing.ID).Error; err != nil {
		return fmt.Errorf("failed to delete textbook %s: %w", tbID, err)
	}

	cache.InvalidateTextbookCache(ctx, t.cacheManager, tbID)
	return nil
}

func (t *TextbookPostgreSQL) Upsert(ctx context.Context, textbooks []models.Textbook) error {
	if len(textbooks) == 0 {
		return nil
	}

	if err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tb_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"tb_title_c", "tb_title_e", "publisher", "is_junior", "chapters", "updated_at"}),
		}).
		Create(&textbooks).Error; err != nil {
		return fmt.Errorf("failed to upsert textbooks: %w", err)
	}

	cache.SafeDelete(ctx, t.cacheManager.Textbook, "list")
	return nil
}
