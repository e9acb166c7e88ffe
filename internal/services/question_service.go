package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/selection"
)

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	imageBase string
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, imageBase string) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		imageBase: imageBase,
	}
}

// Browse filters, groups and renders questions for the given criteria.
func (s *questionService) Browse(ctx context.Context, criteria selection.Criteria, display models.DisplaySettings) (*BrowseResponse, error) {
	criteria = criteria.Normalize()

	var filter repositories.QuestionFilter
	if len(criteria.Years) > 0 {
		filter.Years = criteria.Years
	}
	if len(criteria.TopicIDs) == 1 {
		filter.TopicID = &criteria.TopicIDs[0]
	}

	questions, err := s.repo.Question().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	topics, err := s.repo.Topic().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}

	resp := &BrowseResponse{
		Criteria: criteria,
		Display:  display,
		Groups:   []models.QuestionGroup{},
	}
	for key, group := range selection.Groups(questions, criteria, selection.NewTopicIndex(topics), display) {
		resp.Groups = append(resp.Groups, renderGroup(key, group, display, s.imageBase))
		resp.Total += len(group)
	}

	s.logger.Debug("Questions browsed", "groups", len(resp.Groups), "total", resp.Total)
	return resp, nil
}

// ByYear lists one exam year's questions in question-number order.
func (s *questionService) ByYear(ctx context.Context, year int, display models.DisplaySettings) ([]models.QuestionView, error) {
	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilter{Years: []int{year}})
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for %d: %w", year, err)
	}
	questions = selection.Sort(questions, selection.SortByYearThenNumber)

	views := make([]models.QuestionView, len(questions))
	for i, q := range questions {
		views[i] = models.NewQuestionView(q, display, s.imageBase)
	}
	return views, nil
}

func (s *questionService) Get(ctx context.Context, qID int64, display models.DisplaySettings) (*models.QuestionView, error) {
	q, err := s.repo.Question().GetByQID(ctx, qID)
	if err != nil {
		return nil, mapNotFound(err, ErrQuestionNotFound)
	}
	view := models.NewQuestionView(*q, display, s.imageBase)
	return &view, nil
}

// Years returns the distinct exam years present, newest first.
func (s *questionService) Years(ctx context.Context) ([]int, error) {
	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	years := make([]int, 0)
	for _, q := range questions {
		if !slices.Contains(years, q.Year) {
			years = append(years, q.Year)
		}
	}
	slices.SortFunc(years, func(a, b int) int { return cmp.Compare(b, a) })
	return years, nil
}

func renderGroup(key string, questions []models.Question, display models.DisplaySettings, imageBase string) models.QuestionGroup {
	group := models.QuestionGroup{Key: key, Questions: make([]models.QuestionView, len(questions))}
	for i, q := range questions {
		group.Questions[i] = models.NewQuestionView(q, display, imageBase)
	}
	return group
}
