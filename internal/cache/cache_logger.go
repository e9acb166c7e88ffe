package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern, logging instead of failing
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys, logging instead of failing
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateTopicCache drops the topic list and the single-topic entry
func InvalidateTopicCache(ctx context.Context, cm *CacheManager, tID int) {
	SafeDelete(ctx, cm.Topic, "list", fmt.Sprintf("id:%d", tID))
}

// InvalidateSubtopicCache drops the cached subtopic list of a topic
func InvalidateSubtopicCache(ctx context.Context, cm *CacheManager, tID int) {
	SafeDelete(ctx, cm.Subtopic, fmt.Sprintf("topic:%d", tID))
}

// InvalidateTextbookCache drops the textbook list and the single-textbook entry
func InvalidateTextbookCache(ctx context.Context, cm *CacheManager, tbID string) {
	SafeDelete(ctx, cm.Textbook, "list", "id:"+tbID)
}

// InvalidateQuestionCache drops every cached question listing
func InvalidateQuestionCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Question, "list:*")
}
