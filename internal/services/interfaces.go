package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/mcq-bank-service/internal/editor"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/selection"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateSubtopicRequest = validator.SubtopicCreateRequest
type UpdateSubtopicRequest = validator.SubtopicUpdateRequest
type TopicSaveRequest = validator.TopicSaveRequest
type AssignmentSaveRequest = validator.AssignmentSaveRequest
type SaveTextbookRequest = validator.TextbookSaveRequest
type WorksheetRequest = validator.WorksheetRequest

// BrowseResponse is a filtered, grouped question listing
type BrowseResponse struct {
	Criteria selection.Criteria     `json:"criteria"`
	Display  models.DisplaySettings `json:"display"`
	Groups   []models.QuestionGroup `json:"groups"`
	Total    int                    `json:"total"`
}

// AssignmentBoard is everything the assignment editor shows for one topic
type AssignmentBoard struct {
	Topic     *models.Topic     `json:"topic"`
	Subtopics []models.Subtopic `json:"subtopics"`
	Questions []models.Question `json:"questions"`
}

// ===== SERVICE INTERFACES =====

type TopicService interface {
	List(ctx context.Context) ([]models.Topic, error)
	Get(ctx context.Context, tID int) (*models.Topic, error)

	// Editing
	LoadSnapshot(ctx context.Context) (*editor.TopicSnapshot, error)
	Save(ctx context.Context, snapshot *editor.TopicSnapshot) (*models.SaveResult, error)
	SaveEdits(ctx context.Context, req *TopicSaveRequest) (*models.SaveResult, error)
}

type SubtopicService interface {
	List(ctx context.Context, tID int) ([]models.Subtopic, error)
	Create(ctx context.Context, tID int, req *CreateSubtopicRequest) (*models.Subtopic, error)
	Update(ctx context.Context, stID int, req *UpdateSubtopicRequest) (*models.Subtopic, error)
	// Delete leaves questions that reference the subtopic untouched.
	Delete(ctx context.Context, stID int) error
}

type QuestionService interface {
	Browse(ctx context.Context, criteria selection.Criteria, display models.DisplaySettings) (*BrowseResponse, error)
	ByYear(ctx context.Context, year int, display models.DisplaySettings) ([]models.QuestionView, error)
	Get(ctx context.Context, qID int64, display models.DisplaySettings) (*models.QuestionView, error)
	Years(ctx context.Context) ([]int, error)
}

type AssignmentService interface {
	Load(ctx context.Context, tID int) (*AssignmentBoard, error)
	// Save writes every pending edit in one transaction, clears edits and
	// returns the topic's questions as stored afterwards.
	Save(ctx context.Context, tID int, edits *editor.Assignments) ([]models.Question, error)
	SaveRequest(ctx context.Context, tID int, req *AssignmentSaveRequest) ([]models.Question, error)
}

type TextbookService interface {
	List(ctx context.Context) ([]models.Textbook, error)
	Get(ctx context.Context, tbID string) (*models.Textbook, error)
	Chapters(ctx context.Context, tbID string) ([]models.Chapter, error)
	NewDraft() models.Textbook
	// Save promotes a draft when currentID is temporary and updates otherwise.
	Save(ctx context.Context, currentID string, req *SaveTextbookRequest) (*models.Textbook, error)
	Delete(ctx context.Context, tbID string) error
}

type WorksheetService interface {
	Options(ctx context.Context, chapters []int) (*models.WorksheetOptions, error)
	Generate(ctx context.Context, req *WorksheetRequest) (*models.Worksheet, error)
	ExportXLSX(ctx context.Context, worksheet *models.Worksheet, w io.Writer) error
}

type ServiceManager interface {
	// Core service getters
	Topic() TopicService
	Subtopic() SubtopicService
	Question() QuestionService
	Assignment() AssignmentService
	Textbook() TextbookService
	Worksheet() WorksheetService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
