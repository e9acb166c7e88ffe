package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

func newTestRepository(t *testing.T) repositories.Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("mcq_bank"),
		tcpostgres.WithUsername("mcq"),
		tcpostgres.WithPassword("mcq"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("ConnectionString() error = %v", err)
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	return NewPostgreSQLRepository(RepositoryConfig{DB: db})
}

func intPtr(v int) *int { return &v }

func TestPostgres_QuestionQueries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Question().Upsert(ctx, []models.Question{
		{QID: 1, Year: 2020, QNum: 3, TIDs: []int{101}, Choices: []string{"A", "B"}},
		{QID: 2, Year: 2019, QNum: 1, TIDs: []int{101, 102}},
		{QID: 3, Year: 2020, QNum: 1, TIDs: []int{201}},
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.Question().List(ctx, repositories.QuestionFilter{Years: []int{2019, 2020}, TopicID: intPtr(101)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].QID != 2 || got[1].QID != 1 {
		t.Errorf("List() = %+v, want questions 2 then 1", got)
	}

	got, err = repo.Question().List(ctx, repositories.QuestionFilter{Years: []int{}})
	if err != nil {
		t.Fatalf("List(empty years) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List(empty years) returned %d questions, want 0", len(got))
	}

	err = repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Question().UpdateSubtopics(ctx, 1, []int{10101, 10102}); err != nil {
			return err
		}
		return tx.Question().UpdateSubtopics(ctx, 404, []int{1})
	})
	if !repositories.IsNotFoundError(err) {
		t.Fatalf("WithTransaction() error = %v, want not found", err)
	}
	q, err := repo.Question().GetByQID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByQID() error = %v", err)
	}
	if len(q.STIDs) != 0 {
		t.Errorf("STIDs = %v, want rolled back", q.STIDs)
	}
}

func TestPostgres_ConcurrentSubtopicSequence(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Topic().Upsert(ctx, []models.Topic{{TID: 101, TitleE: "Indices"}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	const creators = 8
	var wg sync.WaitGroup
	errs := make(chan error, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.WithTransaction(ctx, func(tx repositories.Repository) error {
				seq, err := tx.Subtopic().NextSequence(ctx, 101)
				if err != nil {
					return err
				}
				time.Sleep(5 * time.Millisecond)
				return tx.Subtopic().Create(ctx, &models.Subtopic{TID: 101, STSeq: seq, STID: models.SubtopicID(101, seq)})
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create error = %v", err)
		}
	}

	subtopics, err := repo.Subtopic().ListByTopic(ctx, 101)
	if err != nil {
		t.Fatalf("ListByTopic() error = %v", err)
	}
	if len(subtopics) != creators {
		t.Fatalf("ListByTopic() returned %d, want %d", len(subtopics), creators)
	}
	for i, st := range subtopics {
		if st.STSeq != i+1 || st.STID != 10100+i+1 {
			t.Errorf("subtopics[%d] = seq %d id %d, want seq %d id %d", i, st.STSeq, st.STID, i+1, 10101+i)
		}
	}
}

func TestPostgres_TextbookLookup(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Textbook().GetByTbID(ctx, "MISSING"); !repositories.IsNotFoundError(err) {
		t.Errorf("GetByTbID(MISSING) error = %v, want not found", err)
	}

	tb := &models.Textbook{TbID: "ARISTO_INSIGHT", Chapters: []models.Chapter{{CNum: 2}, {CNum: 1}}}
	if err := repo.Textbook().Create(ctx, tb); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Textbook().Create(ctx, &models.Textbook{TbID: "ARISTO_INSIGHT"}); !repositories.IsDuplicateError(err) {
		t.Errorf("Create(duplicate) error = %v, want duplicate", err)
	}
	ok, err := repo.Textbook().Exists(ctx, "ARISTO_INSIGHT")
	if err != nil || !ok {
		t.Errorf("Exists() = %v, %v; want true, nil", ok, err)
	}
}
