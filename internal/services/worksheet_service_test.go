package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
)

func newWorksheetService(d *testDeps) *worksheetService {
	svc := NewWorksheetService(d.repo, d.publisher, d.logger, d.validator, "/images/questions").(*worksheetService)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestWorksheetService_Options(t *testing.T) {
	d := newTestDeps(t)
	svc := newWorksheetService(d)
	ctx := context.Background()

	opts, err := svc.Options(ctx, nil)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(opts.Years) != 13 || opts.Years[0] != 2012 || opts.Years[12] != 2024 {
		t.Errorf("Expected years 2012..2024, got %v", opts.Years)
	}
	if len(opts.Chapters) != 2 || opts.Chapters[0].CNum != 4 || opts.Chapters[1].CNum != 9 {
		t.Errorf("Expected chapters sorted by cNum, got %+v", opts.Chapters)
	}
	if len(opts.Topics) != 3 {
		t.Errorf("Expected every topic without a chapter filter, got %d", len(opts.Topics))
	}
	if opts.DefaultInstructions == "" {
		t.Error("Expected default instructions")
	}

	opts, err = svc.Options(ctx, []int{4})
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(opts.Topics) != 1 || opts.Topics[0].TID != 101 {
		t.Errorf("Expected only topic 101 for chapter 4, got %+v", opts.Topics)
	}
}

func TestWorksheetService_OptionsWithoutChapterTextbook(t *testing.T) {
	d := newTestDeps(t)
	if err := d.repo.Textbook().Delete(context.Background(), ChapterTextbookID); err != nil {
		t.Fatal(err)
	}
	svc := newWorksheetService(d)

	opts, err := svc.Options(context.Background(), nil)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(opts.Chapters) != 0 {
		t.Errorf("Expected no chapters, got %+v", opts.Chapters)
	}
}

func TestWorksheetService_Generate(t *testing.T) {
	d := newTestDeps(t)
	svc := newWorksheetService(d)
	ctx := context.Background()

	ws, err := svc.Generate(ctx, &WorksheetRequest{
		Title:    "  Revision  ",
		TopicIDs: []int{102, 101, 102},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if ws.Title != "Revision" {
		t.Errorf("Expected trimmed title, got %q", ws.Title)
	}
	if len(ws.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(ws.Sections))
	}
	if ws.Sections[0].TopicID != 102 || ws.Sections[0].Title != "概率 (Probability)" {
		t.Errorf("Unexpected first section %+v", ws.Sections[0])
	}
	if ws.Sections[1].TopicID != 101 {
		t.Errorf("Expected second section for topic 101, got %d", ws.Sections[1].TopicID)
	}
	if ws.QuestionCount() != 5 || ws.Empty {
		t.Errorf("Expected 5 questions, got %d", ws.QuestionCount())
	}

	published := d.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.WorksheetGenerated {
		t.Fatalf("Expected one %s event, got %+v", events.WorksheetGenerated, published)
	}
}

func TestWorksheetService_GenerateYearSelection(t *testing.T) {
	d := newTestDeps(t)
	svc := newWorksheetService(d)
	ctx := context.Background()

	ws, err := svc.Generate(ctx, &WorksheetRequest{TopicIDs: []int{101}, Years: []int{2019}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if ws.QuestionCount() != 1 {
		t.Errorf("Expected 1 question for 2019, got %d", ws.QuestionCount())
	}

	ws, err = svc.Generate(ctx, &WorksheetRequest{TopicIDs: []int{101}, Years: []int{}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !ws.Empty || ws.QuestionCount() != 0 {
		t.Errorf("Expected an empty worksheet, got %d questions", ws.QuestionCount())
	}
	if len(ws.Sections) != 1 {
		t.Errorf("Expected the section to be kept, got %d", len(ws.Sections))
	}
}

func TestWorksheetService_GenerateErrors(t *testing.T) {
	d := newTestDeps(t)
	svc := newWorksheetService(d)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, &WorksheetRequest{}); !errors.Is(err, ErrNoTopicSelected) {
		t.Errorf("Expected ErrNoTopicSelected, got %v", err)
	}
	if _, err := svc.Generate(ctx, &WorksheetRequest{TopicIDs: []int{999}}); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Expected ErrTopicNotFound, got %v", err)
	}
	if _, err := svc.Generate(ctx, &WorksheetRequest{TopicIDs: []int{101}, GroupBy: "chapter"}); err == nil {
		t.Error("Expected validation error for unknown group mode")
	}
	if len(d.publisher.GetPublishedEvents()) != 0 {
		t.Error("Expected no events for rejected requests")
	}
}

func TestWorksheetService_ExportXLSX(t *testing.T) {
	d := newTestDeps(t)
	svc := newWorksheetService(d)
	ctx := context.Background()

	hide := false
	ws, err := svc.Generate(ctx, &WorksheetRequest{Title: "Quadratics", TopicIDs: []int{101}, ShowAnswer: &hide})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportXLSX(ctx, ws, &buf); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	title, _ := f.GetCellValue("Worksheet", "A1")
	if title != "Quadratics" {
		t.Errorf("Expected title in A1, got %q", title)
	}
	header, _ := f.GetCellValue("Worksheet", "C3")
	if header != "qId" {
		t.Errorf("Expected qId header in C3, got %q", header)
	}

	rows, err := f.GetRows("Worksheet")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	filled := 0
	for _, row := range rows {
		if len(row) > 0 {
			filled++
		}
	}
	if filled != 2+ws.QuestionCount() {
		t.Errorf("Expected %d filled rows, got %d", 2+ws.QuestionCount(), filled)
	}

	answer, _ := f.GetCellValue("Worksheet", "K4")
	if answer != "" {
		t.Errorf("Expected hidden answer, got %q", answer)
	}
}
