package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

// publishEvent runs after a commit, so a failed publish is logged and never
// turns a successful write into an error.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		logger.Warn("Failed to publish event", "type", eventType, "error", err)
	}
}

// mapNotFound replaces a repository not-found error with the service sentinel.
func mapNotFound(err error, sentinel error) error {
	if repositories.IsNotFoundError(err) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}
