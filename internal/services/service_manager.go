package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// ImageBaseURL prefixes the pre-rendered question image paths
	ImageBaseURL   string
	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	topicService      TopicService
	subtopicService   SubtopicService
	questionService   QuestionService
	assignmentService AssignmentService
	textbookService   TextbookService
	worksheetService  WorksheetService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return NewServiceManager(repo, publisher, logger, validator, ServiceManagerConfig{
		ImageBaseURL:   "/images/questions",
		DefaultTimeout: 30 * time.Second,
	})
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.topicService = NewTopicService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.subtopicService = NewSubtopicService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.questionService = NewQuestionService(sm.repo, sm.logger, sm.config.ImageBaseURL)
	sm.assignmentService = NewAssignmentService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.textbookService = NewTextbookService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.worksheetService = NewWorksheetService(sm.repo, sm.publisher, sm.logger, sm.validator, sm.config.ImageBaseURL)

	pingCtx, cancel := context.WithTimeout(ctx, sm.config.DefaultTimeout)
	defer cancel()
	if err := sm.repo.Ping(pingCtx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Topic() TopicService {
	sm.mustBeInitialized()
	return sm.topicService
}

func (sm *serviceManager) Subtopic() SubtopicService {
	sm.mustBeInitialized()
	return sm.subtopicService
}

func (sm *serviceManager) Question() QuestionService {
	sm.mustBeInitialized()
	return sm.questionService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mustBeInitialized()
	return sm.assignmentService
}

func (sm *serviceManager) Textbook() TextbookService {
	sm.mustBeInitialized()
	return sm.textbookService
}

func (sm *serviceManager) Worksheet() WorksheetService {
	sm.mustBeInitialized()
	return sm.worksheetService
}

func (sm *serviceManager) mustBeInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
