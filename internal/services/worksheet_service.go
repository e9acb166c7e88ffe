package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/mcq-bank-service/internal/editor"
	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/selection"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

const (
	// FirstExamYear is the earliest year offered by the worksheet generator.
	FirstExamYear = 2012
	// ChapterTextbookID supplies the chapter list used to narrow topics.
	ChapterTextbookID = "ARISTO_INSIGHT"
)

// DefaultInstructions is offered when the instructions field is first enabled.
const DefaultInstructions = `> Worksheet instructions are written in Markdown.
# Markdown quick guide
## Headings
* Start a line with a hash sign (#) and a space for a heading.
* Two hash signs (\#\#) give a second-level heading.
## Text
Type as usual, but end a line with **two spaces** to break it.  
Like this.
## Lists
1. First point
1. Second point
* First point
* Second point
## Formulas
Formula: @@a^2+2ab+b^2##
`

const worksheetSheet = "Worksheet"

type worksheetService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	imageBase string
	now       func() time.Time
}

func NewWorksheetService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, imageBase string) WorksheetService {
	return &worksheetService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		imageBase: imageBase,
		now:       time.Now,
	}
}

// Options lists the selectable years, chapters and topics. Topics are
// narrowed to the given chapter numbers; no chapters means every topic.
func (s *worksheetService) Options(ctx context.Context, chapters []int) (*models.WorksheetOptions, error) {
	topics, err := s.repo.Topic().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}

	opts := &models.WorksheetOptions{
		Years:               s.examYears(),
		Chapters:            []models.Chapter{},
		Topics:              topicsInChapters(topics, chapters),
		DefaultInstructions: DefaultInstructions,
	}

	textbook, err := s.repo.Textbook().GetByTbID(ctx, ChapterTextbookID)
	switch {
	case repositories.IsNotFoundError(err):
		s.logger.Warn("Chapter textbook not found", "tb_id", ChapterTextbookID)
	case err != nil:
		return nil, fmt.Errorf("failed to load chapters: %w", err)
	default:
		opts.Chapters = append(opts.Chapters, textbook.Chapters...)
		editor.SortChapters(opts.Chapters)
	}

	return opts, nil
}

// Generate builds one section per selected topic in selection order. Nil
// years selects every offered year; an explicit empty list matches nothing.
func (s *worksheetService) Generate(ctx context.Context, req *WorksheetRequest) (*models.Worksheet, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if len(req.TopicIDs) == 0 {
		return nil, ErrNoTopicSelected
	}

	years := req.Years
	if years == nil {
		years = s.examYears()
	}
	years = repositories.YearsOrPlaceholder(years)

	topics, err := s.repo.Topic().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	index := selection.NewTopicIndex(topics)

	display := worksheetDisplay(req)
	criteria := selection.Criteria{
		GroupBy: selection.GroupMode(req.GroupBy),
		SortBy:  selection.SortMode(req.SortBy),
	}

	ws := &models.Worksheet{
		Title:        strings.TrimSpace(req.Title),
		Instructions: req.Instructions,
		Display:      display,
		Sections:     []models.WorksheetSection{},
		GeneratedAt:  s.now().UTC(),
	}

	var seen []int
	for _, tID := range req.TopicIDs {
		if slices.Contains(seen, tID) {
			continue
		}
		seen = append(seen, tID)

		topic, ok := index[tID]
		if !ok {
			return nil, fmt.Errorf("%w: tId %d", ErrTopicNotFound, tID)
		}

		questions, err := s.repo.Question().List(ctx, repositories.QuestionFilter{Years: years, TopicID: &tID})
		if err != nil {
			return nil, fmt.Errorf("failed to load questions for topic %d: %w", tID, err)
		}

		section := models.WorksheetSection{TopicID: tID, Title: topic.Label(), Groups: []models.QuestionGroup{}}
		for key, group := range selection.Groups(questions, criteria, index, display) {
			section.Groups = append(section.Groups, renderGroup(key, group, display, s.imageBase))
		}
		ws.Sections = append(ws.Sections, section)
	}

	ws.Empty = ws.QuestionCount() == 0
	s.logger.Info("Worksheet generated", "topics", len(ws.Sections), "questions", ws.QuestionCount())
	publishEvent(ctx, s.publisher, s.logger, events.WorksheetGenerated, events.WorksheetData{
		TopicIDs:  seen,
		Years:     years,
		Questions: ws.QuestionCount(),
	})

	return ws, nil
}

// ExportXLSX writes the worksheet as a spreadsheet with one row per question.
// Hidden answers and percentages stay hidden.
func (s *worksheetService) ExportXLSX(ctx context.Context, ws *models.Worksheet, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", worksheetSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if ws.Title != "" {
		if err := f.SetCellValue(worksheetSheet, "A1", ws.Title); err != nil {
			return err
		}
		row = 3
	}

	header := []interface{}{"Section", "Group", "qId", "Year", "Paper", "qNum", "Question", "Statements", "Choices", "Image", "Answer", "HK %"}
	headerCell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(worksheetSheet, headerCell, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(header), row)
	if err := f.SetCellStyle(worksheetSheet, headerCell, lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for _, section := range ws.Sections {
		for _, group := range section.Groups {
			for _, q := range group.Questions {
				if err := ctx.Err(); err != nil {
					return err
				}
				row++
				cell, _ := excelize.CoordinatesToCellName(1, row)
				values := []interface{}{
					section.Title,
					group.Key,
					q.QID,
					optionalInt(q.Year),
					optionalInt(q.Paper),
					optionalInt(q.QNum),
					q.Text,
					strings.Join(q.Statements, "\n"),
					strings.Join(q.Choices, "\n"),
					q.ImageURL,
					q.Answer,
					optionalPercent(q.HKPercent),
				}
				if err := f.SetSheetRow(worksheetSheet, cell, &values); err != nil {
					return fmt.Errorf("failed to write row %d: %w", row, err)
				}
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (s *worksheetService) examYears() []int {
	last := s.now().Year()
	years := make([]int, 0, last-FirstExamYear+1)
	for y := FirstExamYear; y <= last; y++ {
		years = append(years, y)
	}
	return years
}

func topicsInChapters(topics []models.Topic, chapters []int) []models.Topic {
	if len(chapters) == 0 {
		return topics
	}
	out := make([]models.Topic, 0, len(topics))
	for _, t := range topics {
		if slices.Contains(chapters, t.AristoValue()) {
			out = append(out, t)
		}
	}
	return out
}

func worksheetDisplay(req *WorksheetRequest) models.DisplaySettings {
	d := models.DefaultDisplaySettings()
	d.Language = models.ParseLanguage(req.Language)
	if req.ShowMetadata != nil {
		d.ShowMetadata = *req.ShowMetadata
	}
	if req.ShowPercent != nil {
		d.ShowPercent = *req.ShowPercent
	}
	if req.ShowAnswer != nil {
		d.ShowAnswer = *req.ShowAnswer
	}
	return d
}

func optionalInt(v int) interface{} {
	if v == 0 {
		return ""
	}
	return v
}

func optionalPercent(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
