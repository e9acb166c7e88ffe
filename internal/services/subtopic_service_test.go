package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

func TestSubtopicService_Create(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	created, err := svc.Create(ctx, 101, &CreateSubtopicRequest{TitleC: "  頂點  ", TitleE: " Vertex "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.STSeq != 3 {
		t.Errorf("Expected stSeq 3, got %d", created.STSeq)
	}
	if created.STID != 10103 {
		t.Errorf("Expected stId 10103, got %d", created.STID)
	}
	if *created.TitleC != "頂點" || *created.TitleE != "Vertex" {
		t.Errorf("Expected trimmed titles, got %q / %q", *created.TitleC, *created.TitleE)
	}
	if d.repo.Commits() != 1 {
		t.Errorf("Expected 1 commit, got %d", d.repo.Commits())
	}

	list, err := svc.List(ctx, 101)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[2].STID != 10103 {
		t.Errorf("Expected new subtopic listed last, got %+v", list)
	}

	published := d.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.SubtopicCreated {
		t.Fatalf("Expected one %s event, got %+v", events.SubtopicCreated, published)
	}
	data, ok := published[0].Data.(events.SubtopicData)
	if !ok || data.SubtopicID != 10103 || data.Sequence != 3 {
		t.Errorf("Unexpected event payload %+v", published[0].Data)
	}
}

func TestSubtopicService_CreateFirstForTopic(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)

	created, err := svc.Create(context.Background(), 103, &CreateSubtopicRequest{TitleC: "平均", TitleE: "Mean"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.STSeq != 1 || created.STID != 10301 {
		t.Errorf("Expected stSeq 1 and stId 10301, got %d and %d", created.STSeq, created.STID)
	}
}

func TestSubtopicService_CreateValidation(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateSubtopicRequest
	}{
		{name: "blank chinese title", req: CreateSubtopicRequest{TitleC: "   ", TitleE: "Vertex"}},
		{name: "missing english title", req: CreateSubtopicRequest{TitleC: "頂點"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writes := d.repo.Writes()
			_, err := svc.Create(ctx, 101, &tt.req)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected validation errors, got %v", err)
			}
			if d.repo.Writes() != writes {
				t.Error("Expected no writes for an invalid request")
			}
		})
	}
}

func TestSubtopicService_CreateUnknownTopic(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)

	_, err := svc.Create(context.Background(), 999, &CreateSubtopicRequest{TitleC: "甲", TitleE: "A"})
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Expected ErrTopicNotFound, got %v", err)
	}
}

func TestSubtopicService_CreateLimit(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	full := make([]models.Subtopic, 0, MaxSubtopicsPerTopic)
	for seq := 1; seq <= MaxSubtopicsPerTopic; seq++ {
		full = append(full, models.Subtopic{TID: 102, STSeq: seq, STID: models.SubtopicID(102, seq)})
	}
	if err := d.repo.Subtopic().Upsert(ctx, full); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Create(ctx, 102, &CreateSubtopicRequest{TitleC: "甲", TitleE: "A"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Expected ErrValidationFailed, got %v", err)
	}
}

func TestSubtopicService_ConcurrentCreate(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan *models.Subtopic, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := svc.Create(ctx, 103, &CreateSubtopicRequest{TitleC: "甲", TitleE: "A"})
			if err != nil {
				errs <- err
				return
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Errorf("Create() error = %v", err)
	}

	seen := make(map[int]bool)
	for created := range results {
		if seen[created.STSeq] {
			t.Errorf("Duplicate stSeq %d", created.STSeq)
		}
		seen[created.STSeq] = true
		if created.STID != models.SubtopicID(103, created.STSeq) {
			t.Errorf("Expected stId derived from stSeq %d, got %d", created.STSeq, created.STID)
		}
	}
	for seq := 1; seq <= workers; seq++ {
		if !seen[seq] {
			t.Errorf("Expected stSeq %d to be allocated", seq)
		}
	}
}

func TestSubtopicService_Update(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	updated, err := svc.Update(ctx, 10101, &UpdateSubtopicRequest{TitleE: strp(" Real roots ")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if *updated.TitleE != "Real roots" {
		t.Errorf("Expected trimmed title, got %q", *updated.TitleE)
	}
	if updated.TitleC == nil || *updated.TitleC != "根" {
		t.Errorf("Expected omitted title kept, got %v", updated.TitleC)
	}

	updated, err = svc.Update(ctx, 10101, &UpdateSubtopicRequest{TitleC: strp("")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.TitleC != nil {
		t.Errorf("Expected blank title to clear, got %q", *updated.TitleC)
	}

	if _, err := svc.Update(ctx, 19999, &UpdateSubtopicRequest{TitleE: strp("x")}); !errors.Is(err, ErrSubtopicNotFound) {
		t.Errorf("Expected ErrSubtopicNotFound, got %v", err)
	}
}

func TestSubtopicService_DeleteLeavesQuestionReferences(t *testing.T) {
	d := newTestDeps(t)
	svc := NewSubtopicService(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	if err := svc.Delete(ctx, 10101); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	q, err := d.repo.Question().GetByQID(ctx, 4)
	if err != nil {
		t.Fatalf("GetByQID() error = %v", err)
	}
	if len(q.STIDs) != 1 || q.STIDs[0] != 10101 {
		t.Errorf("Expected question to keep stId 10101, got %v", q.STIDs)
	}

	if err := svc.Delete(ctx, 10101); !errors.Is(err, ErrSubtopicNotFound) {
		t.Errorf("Expected ErrSubtopicNotFound on second delete, got %v", err)
	}

	// The freed sequence is not reused while a higher one exists.
	created, err := svc.Create(ctx, 101, &CreateSubtopicRequest{TitleC: "甲", TitleE: "A"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.STSeq != 3 {
		t.Errorf("Expected stSeq 3, got %d", created.STSeq)
	}
}
