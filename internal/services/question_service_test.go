package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/selection"
)

func TestQuestionService_Browse(t *testing.T) {
	d := newTestDeps(t)
	svc := NewQuestionService(d.repo, d.logger, "/images/questions")
	ctx := context.Background()

	t.Run("single topic grouped by topic combination", func(t *testing.T) {
		resp, err := svc.Browse(ctx, selection.Criteria{TopicIDs: []int{101}}, models.DefaultDisplaySettings())
		if err != nil {
			t.Fatalf("Browse() error = %v", err)
		}
		if resp.Total != 3 {
			t.Errorf("Expected 3 questions, got %d", resp.Total)
		}
		if len(resp.Groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(resp.Groups))
		}
		if resp.Groups[0].Key != "Quadratic Equations" || resp.Groups[1].Key != "Quadratic Equations / Probability" {
			t.Errorf("Unexpected group keys %q, %q", resp.Groups[0].Key, resp.Groups[1].Key)
		}
		first := resp.Groups[0].Questions
		if len(first) != 2 || first[0].QID != 1 || first[1].QID != 4 {
			t.Errorf("Expected questions 1 then 4, got %+v", first)
		}
		if resp.Criteria.GroupBy != selection.GroupByTopic {
			t.Errorf("Expected normalized group mode, got %q", resp.Criteria.GroupBy)
		}
	})

	t.Run("year grouping with percent sort", func(t *testing.T) {
		criteria := selection.Criteria{Years: []int{2020}, GroupBy: selection.GroupByYear, SortBy: selection.SortByPercentDesc}
		resp, err := svc.Browse(ctx, criteria, models.DefaultDisplaySettings())
		if err != nil {
			t.Fatalf("Browse() error = %v", err)
		}
		if len(resp.Groups) != 1 || resp.Groups[0].Key != "2020" {
			t.Fatalf("Expected one 2020 group, got %+v", resp.Groups)
		}
		qs := resp.Groups[0].Questions
		if len(qs) != 2 || qs[0].QID != 3 || qs[1].QID != 2 {
			t.Errorf("Expected question 3 before question 2, got %+v", qs)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		resp, err := svc.Browse(ctx, selection.Criteria{Years: []int{1999}}, models.DefaultDisplaySettings())
		if err != nil {
			t.Fatalf("Browse() error = %v", err)
		}
		if resp.Total != 0 || len(resp.Groups) != 0 {
			t.Errorf("Expected empty result, got %+v", resp)
		}
	})
}

func TestQuestionService_ByYear(t *testing.T) {
	d := newTestDeps(t)
	svc := NewQuestionService(d.repo, d.logger, "/images/questions")

	views, err := svc.ByYear(context.Background(), 2020, models.DefaultDisplaySettings())
	if err != nil {
		t.Fatalf("ByYear() error = %v", err)
	}
	if len(views) != 2 || views[0].QNum != 2 || views[1].QNum != 9 {
		t.Errorf("Expected qNum order 2, 9, got %+v", views)
	}
}

func TestQuestionService_GetRendersDisplaySettings(t *testing.T) {
	d := newTestDeps(t)
	svc := NewQuestionService(d.repo, d.logger, "/images/questions")
	ctx := context.Background()

	display := models.DisplaySettings{Language: models.LanguageChinese, ShowMetadata: true, ShowAnswer: false, ShowPercent: true}
	view, err := svc.Get(ctx, 3, display)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if view.ImageURL != "/images/questions/3c.png" {
		t.Errorf("Expected chinese image url, got %q", view.ImageURL)
	}
	if view.Text != "" || len(view.Choices) != 0 {
		t.Error("Expected image question to carry no text content")
	}
	if view.Answer != "" {
		t.Errorf("Expected answer hidden, got %q", view.Answer)
	}
	if view.HKPercent == nil || *view.HKPercent != 70 {
		t.Errorf("Expected percent 70, got %v", view.HKPercent)
	}

	if _, err := svc.Get(ctx, 999, display); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionService_Years(t *testing.T) {
	d := newTestDeps(t)
	svc := NewQuestionService(d.repo, d.logger, "/images/questions")

	years, err := svc.Years(context.Background())
	if err != nil {
		t.Fatalf("Years() error = %v", err)
	}
	want := []int{2021, 2020, 2019}
	if len(years) != len(want) {
		t.Fatalf("Expected %v, got %v", want, years)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, years)
			break
		}
	}
}
