package repositories

import "context"

// Repository aggregates the per-collection repositories
type Repository interface {
	Topic() TopicRepository
	Subtopic() SubtopicRepository
	Question() QuestionRepository
	Textbook() TextbookRepository

	// WithTransaction runs fn against a transactional repository. Every write
	// made through the repository passed to fn commits together or not at all.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
