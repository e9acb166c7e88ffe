// Package memory is an in-process Repository used for development and tests.
// Transactions run against a private copy of the data that replaces the shared
// copy only when the callback succeeds.
package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

type data struct {
	topics    map[int]models.Topic
	subtopics map[int]models.Subtopic
	questions map[int64]models.Question
	textbooks map[string]models.Textbook
	nextID    uint
}

func newData() *data {
	return &data{
		topics:    make(map[int]models.Topic),
		subtopics: make(map[int]models.Subtopic),
		questions: make(map[int64]models.Question),
		textbooks: make(map[string]models.Textbook),
	}
}

func (d *data) clone() *data {
	c := newData()
	c.nextID = d.nextID
	for k, v := range d.topics {
		c.topics[k] = v.Clone()
	}
	for k, v := range d.subtopics {
		c.subtopics[k] = cloneSubtopic(v)
	}
	for k, v := range d.questions {
		c.questions[k] = v.Clone()
	}
	for k, v := range d.textbooks {
		c.textbooks[k] = v.Clone()
	}
	return c
}

func (d *data) id() uint {
	d.nextID++
	return d.nextID
}

// Repository is a mutex-guarded in-memory implementation of repositories.Repository.
type Repository struct {
	mu   *sync.Mutex
	root **data
	// tx is set on repositories handed to WithTransaction callbacks; they
	// already hold mu and write to a private copy.
	tx *data

	// Writes counts committed mutating calls. Tests use it to assert that
	// no-op saves never reach the store.
	writes *int
	// commits counts successful WithTransaction calls.
	commits *int
}

func NewRepository() *Repository {
	d := newData()
	return &Repository{
		mu:      &sync.Mutex{},
		root:    &d,
		writes:  new(int),
		commits: new(int),
	}
}

// Writes returns the number of mutating calls that reached the store.
func (r *Repository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.writes
}

// Commits returns the number of committed transactions.
func (r *Repository) Commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.commits
}

// view runs fn with read access to the current data.
func (r *Repository) view(fn func(d *data) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(*r.root)
}

// update runs fn against a copy that is committed only when fn succeeds.
func (r *Repository) update(fn func(d *data) error) error {
	if r.tx != nil {
		if err := fn(r.tx); err != nil {
			return err
		}
		*r.writes++
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	work := (*r.root).clone()
	if err := fn(work); err != nil {
		return err
	}
	*r.root = work
	*r.writes++
	return nil
}

func (r *Repository) Topic() repositories.TopicRepository       { return topicRepo{r} }
func (r *Repository) Subtopic() repositories.SubtopicRepository { return subtopicRepo{r} }
func (r *Repository) Question() repositories.QuestionRepository { return questionRepo{r} }
func (r *Repository) Textbook() repositories.TextbookRepository { return textbookRepo{r} }

// WithTransaction holds the store lock for the whole callback, so transactions
// are serialised.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	writes := *r.writes
	txRepo := &Repository{mu: r.mu, root: r.root, tx: (*r.root).clone(), writes: r.writes, commits: r.commits}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(txRepo); err != nil {
		*r.writes = writes
		return err
	}
	*r.root = txRepo.tx
	*r.commits++
	return nil
}

func (r *Repository) Ping(ctx context.Context) error { return ctx.Err() }
func (r *Repository) Close() error                   { return nil }

// ===== TOPICS =====

type topicRepo struct{ r *Repository }

func (t topicRepo) List(ctx context.Context) ([]models.Topic, error) {
	var out []models.Topic
	err := t.r.view(func(d *data) error {
		for _, topic := range d.topics {
			out = append(out, topic.Clone())
		}
		return nil
	})
	slices.SortFunc(out, func(a, b models.Topic) int {
		return cmp.Or(cmp.Compare(a.AristoValue(), b.AristoValue()), cmp.Compare(a.TID, b.TID))
	})
	return out, err
}

func (t topicRepo) GetByTID(ctx context.Context, tID int) (*models.Topic, error) {
	var out *models.Topic
	err := t.r.view(func(d *data) error {
		topic, ok := d.topics[tID]
		if !ok {
			return repositories.NotFound("topic", tID)
		}
		c := topic.Clone()
		out = &c
		return nil
	})
	return out, err
}

func (t topicRepo) UpdateFields(ctx context.Context, tID int, fields repositories.TopicFields) error {
	if len(fields) == 0 {
		return nil
	}
	return t.r.update(func(d *data) error {
		topic, ok := d.topics[tID]
		if !ok {
			return repositories.NotFound("topic", tID)
		}
		for column, value := range fields {
			switch column {
			case repositories.TopicFieldTitleE:
				topic.TitleE = value.(string)
			case repositories.TopicFieldTitleC:
				topic.TitleC = value.(string)
			case repositories.TopicFieldIsJunior:
				topic.IsJunior = value.(bool)
			case repositories.TopicFieldAristo:
				topic.Aristo = nil
				if v, ok := value.(*int); ok && v != nil {
					a := *v
					topic.Aristo = &a
				}
			}
		}
		topic.UpdatedAt = time.Now()
		d.topics[tID] = topic
		return nil
	})
}

func (t topicRepo) Upsert(ctx context.Context, topics []models.Topic) error {
	return t.r.update(func(d *data) error {
		for _, topic := range topics {
			if existing, ok := d.topics[topic.TID]; ok {
				topic.ID = existing.ID
			} else {
				topic.ID = d.id()
			}
			d.topics[topic.TID] = topic.Clone()
		}
		return nil
	})
}

// ===== SUBTOPICS =====

type subtopicRepo struct{ r *Repository }

func cloneSubtopic(s models.Subtopic) models.Subtopic {
	if s.TitleC != nil {
		v := *s.TitleC
		s.TitleC = &v
	}
	if s.TitleE != nil {
		v := *s.TitleE
		s.TitleE = &v
	}
	return s
}

func (s subtopicRepo) ListByTopic(ctx context.Context, tID int) ([]models.Subtopic, error) {
	var out []models.Subtopic
	err := s.r.view(func(d *data) error {
		for _, st := range d.subtopics {
			if st.TID == tID {
				out = append(out, cloneSubtopic(st))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b models.Subtopic) int { return cmp.Compare(a.STSeq, b.STSeq) })
	return out, err
}

func (s subtopicRepo) GetByStID(ctx context.Context, stID int) (*models.Subtopic, error) {
	var out *models.Subtopic
	err := s.r.view(func(d *data) error {
		st, ok := d.subtopics[stID]
		if !ok {
			return repositories.NotFound("subtopic", stID)
		}
		c := cloneSubtopic(st)
		out = &c
		return nil
	})
	return out, err
}

func (s subtopicRepo) NextSequence(ctx context.Context, tID int) (int, error) {
	last := 0
	err := s.r.view(func(d *data) error {
		if _, ok := d.topics[tID]; !ok {
			return repositories.NotFound("topic", tID)
		}
		for _, st := range d.subtopics {
			if st.TID == tID && st.STSeq > last {
				last = st.STSeq
			}
		}
		return nil
	})
	return last + 1, err
}

func (s subtopicRepo) Create(ctx context.Context, subtopic *models.Subtopic) error {
	return s.r.update(func(d *data) error {
		if _, ok := d.subtopics[subtopic.STID]; ok {
			return repositories.ErrDuplicate
		}
		subtopic.ID = d.id()
		subtopic.CreatedAt = time.Now()
		d.subtopics[subtopic.STID] = cloneSubtopic(*subtopic)
		return nil
	})
}

func (s subtopicRepo) UpdateTitles(ctx context.Context, stID int, titleC, titleE *string) error {
	return s.r.update(func(d *data) error {
		st, ok := d.subtopics[stID]
		if !ok {
			return repositories.NotFound("subtopic", stID)
		}
		st.TitleC, st.TitleE = titleC, titleE
		d.subtopics[stID] = cloneSubtopic(st)
		return nil
	})
}

func (s subtopicRepo) Delete(ctx context.Context, stID int) error {
	return s.r.update(func(d *data) error {
		if _, ok := d.subtopics[stID]; !ok {
			return repositories.NotFound("subtopic", stID)
		}
		delete(d.subtopics, stID)
		return nil
	})
}

func (s subtopicRepo) Upsert(ctx context.Context, subtopics []models.Subtopic) error {
	return s.r.update(func(d *data) error {
		for _, st := range subtopics {
			if existing, ok := d.subtopics[st.STID]; ok {
				st.ID = existing.ID
			} else {
				st.ID = d.id()
			}
			d.subtopics[st.STID] = cloneSubtopic(st)
		}
		return nil
	})
}

// ===== QUESTIONS =====

type questionRepo struct{ r *Repository }

func (q questionRepo) List(ctx context.Context, filter repositories.QuestionFilter) ([]models.Question, error) {
	var years []int
	if filter.Years != nil {
		years = repositories.YearsOrPlaceholder(filter.Years)
	}

	var out []models.Question
	err := q.r.view(func(d *data) error {
		for _, question := range d.questions {
			if years != nil && !slices.Contains(years, question.Year) {
				continue
			}
			if filter.TopicID != nil && !question.HasTopic(*filter.TopicID) {
				continue
			}
			out = append(out, question.Clone())
		}
		return nil
	})
	slices.SortFunc(out, func(a, b models.Question) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.QNum, b.QNum), cmp.Compare(a.QID, b.QID))
	})
	return out, err
}

func (q questionRepo) GetByQID(ctx context.Context, qID int64) (*models.Question, error) {
	var out *models.Question
	err := q.r.view(func(d *data) error {
		question, ok := d.questions[qID]
		if !ok {
			return repositories.NotFound("question", qID)
		}
		c := question.Clone()
		out = &c
		return nil
	})
	return out, err
}

func (q questionRepo) UpdateSubtopics(ctx context.Context, qID int64, stIDs []int) error {
	return q.r.update(func(d *data) error {
		question, ok := d.questions[qID]
		if !ok {
			return repositories.NotFound("question", qID)
		}
		question.STIDs = append([]int{}, stIDs...)
		d.questions[qID] = question
		return nil
	})
}

func (q questionRepo) Upsert(ctx context.Context, questions []models.Question) error {
	return q.r.update(func(d *data) error {
		for _, question := range questions {
			if existing, ok := d.questions[question.QID]; ok {
				question.ID = existing.ID
			} else {
				question.ID = d.id()
			}
			d.questions[question.QID] = question.Clone()
		}
		return nil
	})
}

// ===== TEXTBOOKS =====

type textbookRepo struct{ r *Repository }

func (t textbookRepo) List(ctx context.Context) ([]models.Textbook, error) {
	var out []models.Textbook
	err := t.r.view(func(d *data) error {
		for _, tb := range d.textbooks {
			out = append(out, tb.Clone())
		}
		return nil
	})
	slices.SortFunc(out, func(a, b models.Textbook) int { return cmp.Compare(a.TbID, b.TbID) })
	return out, err
}

func (t textbookRepo) GetByTbID(ctx context.Context, tbID string) (*models.Textbook, error) {
	var out *models.Textbook
	err := t.r.view(func(d *data) error {
		tb, ok := d.textbooks[tbID]
		if !ok {
			return repositories.NotFound("textbook", tbID)
		}
		c := tb.Clone()
		out = &c
		return nil
	})
	return out, err
}

func (t textbookRepo) Exists(ctx context.Context, tbID string) (bool, error) {
	found := false
	err := t.r.view(func(d *data) error {
		_, found = d.textbooks[tbID]
		return nil
	})
	return found, err
}

func (t textbookRepo) Create(ctx context.Context, textbook *models.Textbook) error {
	return t.r.update(func(d *data) error {
		if _, ok := d.textbooks[textbook.TbID]; ok {
			return repositories.ErrDuplicate
		}
		textbook.ID = d.id()
		textbook.CreatedAt = time.Now()
		d.textbooks[textbook.TbID] = textbook.Clone()
		return nil
	})
}

func (t textbookRepo) Update(ctx context.Context, tbID string, textbook *models.Textbook) error {
	return t.r.update(func(d *data) error {
		existing, ok := d.textbooks[tbID]
		if !ok {
			return repositories.NotFound("textbook", tbID)
		}
		existing.TitleC = textbook.TitleC
		existing.TitleE = textbook.TitleE
		existing.Publisher = textbook.Publisher
		existing.IsJunior = textbook.IsJunior
		existing.Chapters = textbook.Clone().Chapters
		existing.UpdatedAt = time.Now()
		d.textbooks[tbID] = existing
		return nil
	})
}

func (t textbookRepo) Delete(ctx context.Context, tbID string) error {
	return t.r.update(func(d *data) error {
		if _, ok := d.textbooks[tbID]; !ok {
			return repositories.NotFound("textbook", tbID)
		}
		delete(d.textbooks, tbID)
		return nil
	})
}

func (t textbookRepo) Upsert(ctx context.Context, textbooks []models.Textbook) error {
	return t.r.update(func(d *data) error {
		for _, tb := range textbooks {
			if existing, ok := d.textbooks[tb.TbID]; ok {
				tb.ID = existing.ID
				tb.CreatedAt = existing.CreatedAt
			} else {
				tb.ID = d.id()
			}
			d.textbooks[tb.TbID] = tb.Clone()
		}
		return nil
	})
}

// RepositoryManager serves a single in-memory repository
type RepositoryManager struct {
	repo *Repository
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{}
}

func (rm *RepositoryManager) Initialize() error {
	if rm.repo == nil {
		rm.repo = NewRepository()
	}
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return errors.New("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	return nil
}
