package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/mcq-bank-service/internal/events"
	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories/memory"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

var errStoreUnavailable = errors.New("store unavailable")

type testDeps struct {
	repo      *memory.Repository
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := &testDeps{
		repo:      memory.NewRepository(),
		publisher: events.NewMockEventPublisher(logger),
		logger:    logger,
		validator: validator.New(),
	}
	seedFixtures(t, d.repo)
	return d
}

func strp(s string) *string   { return &s }
func intp(v int) *int         { return &v }
func f64p(v float64) *float64 { return &v }
func boolp(v bool) *bool      { return &v }

func seedFixtures(t *testing.T, repo repositories.Repository) {
	t.Helper()
	ctx := context.Background()

	topics := []models.Topic{
		{TID: 101, TitleE: "Quadratic Equations", TitleC: "二次方程", Aristo: intp(4)},
		{TID: 102, TitleE: "Probability", TitleC: "概率", Aristo: intp(9)},
		{TID: 103, TitleE: "Statistics", TitleC: "統計"},
	}
	subtopics := []models.Subtopic{
		{TID: 101, STSeq: 1, STID: 10101, TitleC: strp("根"), TitleE: strp("Roots")},
		{TID: 101, STSeq: 2, STID: 10102, TitleC: strp("判別式"), TitleE: strp("Discriminant")},
	}
	questions := []models.Question{
		{QID: 1, Year: 2019, Paper: 2, QNum: 4, QText: "q1", Choices: []string{"A", "B", "C", "D"}, TIDs: []int{101}, Ans: "A", HKPercent: f64p(55)},
		{QID: 2, Year: 2020, Paper: 2, QNum: 9, QText: "q2", Choices: []string{"A", "B", "C", "D"}, TIDs: []int{101, 102}, Ans: "B"},
		{QID: 3, Year: 2020, Paper: 2, QNum: 2, HasImage: true, TIDs: []int{102}, Ans: "C", HKPercent: f64p(70)},
		{QID: 4, Year: 2021, Paper: 2, QNum: 1, QText: "q4", TIDs: []int{101}, STIDs: []int{10101}, Ans: "D", HKPercent: f64p(30)},
	}
	textbooks := []models.Textbook{
		{TbID: "ARISTO_INSIGHT", TitleE: "Aristo Insight", Chapters: []models.Chapter{
			{CNum: 9, TitleE: "Probability"},
			{CNum: 4, TitleE: "Quadratics"},
		}},
	}

	if err := repo.Topic().Upsert(ctx, topics); err != nil {
		t.Fatal(err)
	}
	if err := repo.Subtopic().Upsert(ctx, subtopics); err != nil {
		t.Fatal(err)
	}
	if err := repo.Question().Upsert(ctx, questions); err != nil {
		t.Fatal(err)
	}
	if err := repo.Textbook().Upsert(ctx, textbooks); err != nil {
		t.Fatal(err)
	}
}

// failingRepository fails writes for one topic or question so that
// transaction rollback can be observed.
type failingRepository struct {
	repositories.Repository
	failTopic    int
	failQuestion int64
}

func (f *failingRepository) Topic() repositories.TopicRepository {
	return failingTopics{TopicRepository: f.Repository.Topic(), fail: f.failTopic}
}

func (f *failingRepository) Question() repositories.QuestionRepository {
	return failingQuestions{QuestionRepository: f.Repository.Question(), fail: f.failQuestion}
}

func (f *failingRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return f.Repository.WithTransaction(ctx, func(tx repositories.Repository) error {
		return fn(&failingRepository{Repository: tx, failTopic: f.failTopic, failQuestion: f.failQuestion})
	})
}

type failingTopics struct {
	repositories.TopicRepository
	fail int
}

func (ft failingTopics) UpdateFields(ctx context.Context, tID int, fields repositories.TopicFields) error {
	if tID == ft.fail {
		return errStoreUnavailable
	}
	return ft.TopicRepository.UpdateFields(ctx, tID, fields)
}

type failingQuestions struct {
	repositories.QuestionRepository
	fail int64
}

func (fq failingQuestions) UpdateSubtopics(ctx context.Context, qID int64, stIDs []int) error {
	if qID == fq.fail {
		return errStoreUnavailable
	}
	return fq.QuestionRepository.UpdateSubtopics(ctx, qID, stIDs)
}
