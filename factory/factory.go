// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package factory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/models"
)

// DefaultQuestionText is the question_text of a question built without options
const DefaultQuestionText = "How do you do ?"

const fuzzyChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// QuestionOption overrides a field of a question under construction
type QuestionOption func(*models.Question)

// WithText sets question_text
func WithText(text string) QuestionOption {
	return func(q *models.Question) {
		q.QuestionText = text
	}
}

// WithPubDate sets pub_date to an absolute time
func WithPubDate(t time.Time) QuestionOption {
	return func(q *models.Question) {
		q.PubDate = t
	}
}

// PublishedIn sets pub_date relative to now. Negative offsets are in the past.
func PublishedIn(offset time.Duration) QuestionOption {
	return func(q *models.Question) {
		q.PubDate = time.Now().Add(offset)
	}
}

// PublishedDays is PublishedIn for whole days
func PublishedDays(days int) QuestionOption {
	return func(q *models.Question) {
		q.PubDate = time.Now().AddDate(0, 0, days)
	}
}

// QuestionFactory builds and persists questions with default field values
type QuestionFactory struct {
	db *sql.DB

	// GetOrCreate makes Create return an existing question with the same
	// question_text instead of inserting a new one
	GetOrCreate bool

	seq atomic.Int64
}

// NewQuestionFactory returns a factory that stores questions in conn
func NewQuestionFactory(conn *sql.DB) *QuestionFactory {
	return &QuestionFactory{db: conn}
}

// Build returns an unsaved question. pub_date defaults to the build time.
func (f *QuestionFactory) Build(opts ...QuestionOption) models.Question {
	q := models.Question{
		QuestionText: DefaultQuestionText,
		PubDate:      time.Now(),
	}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Create builds a question and stores it
func (f *QuestionFactory) Create(ctx context.Context, opts ...QuestionOption) (models.Question, error) {
	q := f.Build(opts...)

	if f.GetOrCreate {
		existing, err := db.FindQuestionByText(ctx, f.db, q.QuestionText)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, db.ErrQuestionNotFound) {
			return models.Question{}, err
		}
	}

	return db.InsertQuestion(ctx, f.db, q.QuestionText, q.PubDate)
}

// CreateBatch creates n questions with the same options
func (f *QuestionFactory) CreateBatch(ctx context.Context, n int, opts ...QuestionOption) ([]models.Question, error) {
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := f.Create(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create question %d of %d: %w", i+1, n, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Sequence returns "Question 1", "Question 2", ... for this factory
func (f *QuestionFactory) Sequence() string {
	return fmt.Sprintf("Question %d", f.seq.Add(1))
}

// ChoiceOption overrides a field of a choice under construction
type ChoiceOption func(*models.Choice)

// WithChoiceText sets choice_text
func WithChoiceText(text string) ChoiceOption {
	return func(c *models.Choice) {
		c.ChoiceText = text
	}
}

// WithVotes sets the starting vote count
func WithVotes(votes int) ChoiceOption {
	return func(c *models.Choice) {
		c.Votes = votes
	}
}

// ChoiceFactory builds and persists choices for a question
type ChoiceFactory struct {
	db  *sql.DB
	seq atomic.Int64
}

// NewChoiceFactory returns a factory that stores choices in conn
func NewChoiceFactory(conn *sql.DB) *ChoiceFactory {
	return &ChoiceFactory{db: conn}
}

// Build returns an unsaved choice. Text defaults to "Choice N", votes to 0.
func (f *ChoiceFactory) Build(question models.Question, opts ...ChoiceOption) models.Choice {
	c := models.Choice{
		QuestionID: question.ID,
		ChoiceText: fmt.Sprintf("Choice %d", f.seq.Add(1)),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Create builds a choice and stores it under question
func (f *ChoiceFactory) Create(ctx context.Context, question models.Question, opts ...ChoiceOption) (models.Choice, error) {
	c := f.Build(question, opts...)
	return db.InsertChoice(ctx, f.db, c.QuestionID, c.ChoiceText, c.Votes)
}

// FuzzyText returns prefix followed by length random ASCII letters
func FuzzyText(prefix string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = fuzzyChars[rand.IntN(len(fuzzyChars))]
	}
	return prefix + string(b)
}

// FuzzyVotes returns a random vote count in [0, limit]
func FuzzyVotes(limit int) int {
	if limit <= 0 {
		return 0
	}
	return rand.IntN(limit + 1)
}

// Seed creates n published questions with fuzzy text, each with three
// choices, spaced one hour apart going back from now
func Seed(ctx context.Context, conn *sql.DB, n int) ([]models.Question, error) {
	questions := NewQuestionFactory(conn)
	choices := NewChoiceFactory(conn)

	created := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := questions.Create(ctx,
			WithText(FuzzyText(questions.Sequence()+": ", 12)+"?"),
			PublishedIn(-time.Duration(i+1)*time.Hour),
		)
		if err != nil {
			return nil, err
		}
		for j := 0; j < 3; j++ {
			if _, err := choices.Create(ctx, q, WithVotes(FuzzyVotes(10))); err != nil {
				return nil, err
			}
		}
		created = append(created, q)
	}
	return created, nil
}
