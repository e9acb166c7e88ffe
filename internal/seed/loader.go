// Package seed loads fixture data from a YAML file into the repositories.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
	"github.com/SAP-F-2025/mcq-bank-service/internal/validator"
)

//go:embed schema.json
var documentSchema string

var ErrInvalidDocument = errors.New("invalid seed document")

// Document is the on-disk fixture layout.
type Document struct {
	Topics    []models.Topic    `yaml:"topics"`
	Subtopics []models.Subtopic `yaml:"subtopics"`
	Questions []models.Question `yaml:"questions"`
	Textbooks []models.Textbook `yaml:"textbooks"`
}

// Summary counts the records written.
type Summary struct {
	Topics    int
	Subtopics int
	Questions int
	Textbooks int
}

type Loader struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
	schema    *gojsonschema.Schema
}

func NewLoader(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) (*Loader, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile seed schema: %w", err)
	}
	return &Loader{repo: repo, validator: v, logger: logger, schema: schema}, nil
}

// LoadFile parses, validates and applies the document at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	doc, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l.Apply(ctx, doc)
}

// Parse checks data against the schema and the business rules.
func (l *Loader) Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	result, err := l.schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	for i := range doc.Subtopics {
		st := &doc.Subtopics[i]
		want := models.SubtopicID(st.TID, st.STSeq)
		if st.STID != 0 && st.STID != want {
			return nil, fmt.Errorf("%w: subtopic stId %d does not match tId %d and stSeq %d", ErrInvalidDocument, st.STID, st.TID, st.STSeq)
		}
		st.STID = want
	}

	bv := l.validator.GetBusinessValidator()
	for i := range doc.Questions {
		if errs := bv.ValidateQuestion(&doc.Questions[i]); len(errs) > 0 {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidDocument, doc.Questions[i].QID, errs)
		}
	}

	for i := range doc.Textbooks {
		doc.Textbooks[i].TbID = strings.TrimSpace(doc.Textbooks[i].TbID)
	}

	return &doc, nil
}

// Apply upserts every record in one transaction.
func (l *Loader) Apply(ctx context.Context, doc *Document) (*Summary, error) {
	err := l.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Topic().Upsert(ctx, doc.Topics); err != nil {
			return fmt.Errorf("topics: %w", err)
		}
		if err := tx.Subtopic().Upsert(ctx, doc.Subtopics); err != nil {
			return fmt.Errorf("subtopics: %w", err)
		}
		if err := tx.Question().Upsert(ctx, doc.Questions); err != nil {
			return fmt.Errorf("questions: %w", err)
		}
		if err := tx.Textbook().Upsert(ctx, doc.Textbooks); err != nil {
			return fmt.Errorf("textbooks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply seed: %w", err)
	}

	summary := &Summary{
		Topics:    len(doc.Topics),
		Subtopics: len(doc.Subtopics),
		Questions: len(doc.Questions),
		Textbooks: len(doc.Textbooks),
	}
	l.logger.Info("Seed data applied",
		"topics", summary.Topics,
		"subtopics", summary.Subtopics,
		"questions", summary.Questions,
		"textbooks", summary.Textbooks)
	return summary, nil
}
