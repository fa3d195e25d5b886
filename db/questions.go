// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-polls/models"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice not found")
	ErrInvalidText      = errors.New("invalid text")
)

// ValidateText checks that text is non-blank and at most limit characters
func ValidateText(text string, limit int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidText)
	}
	if utf8.RuneCountInString(text) > limit {
		return fmt.Errorf("%w: text longer than %d characters", ErrInvalidText, limit)
	}
	return nil
}

// InsertQuestion stores a new question. pub_date is stored in UTC.
func InsertQuestion(ctx context.Context, db *sql.DB, text string, pubDate time.Time) (models.Question, error) {
	if err := ValidateText(text, models.MaxQuestionTextLen); err != nil {
		return models.Question{}, err
	}

	q := models.Question{QuestionText: text, PubDate: pubDate.UTC()}
	err := db.QueryRowContext(ctx, `
		INSERT INTO question (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`, q.QuestionText, q.PubDate).Scan(&q.ID)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}

	return q, nil
}

// GetQuestion returns a question regardless of its publication date
func GetQuestion(ctx context.Context, db *sql.DB, id int64) (models.Question, error) {
	return scanQuestion(db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1
	`, id))
}

// FindQuestionByText returns the oldest question with exactly this text
func FindQuestionByText(ctx context.Context, db *sql.DB, text string) (models.Question, error) {
	return scanQuestion(db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE question_text = $1
		ORDER BY id
		LIMIT 1
	`, text))
}

// GetPublishedQuestion returns the question only if it is published at now
func GetPublishedQuestion(ctx context.Context, db *sql.DB, id int64, now time.Time) (models.Question, error) {
	return scanQuestion(db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1 AND pub_date <= $2
	`, id, now.UTC()))
}

// LatestPublishedQuestions returns up to limit questions published at or
// before now, newest first
func LatestPublishedQuestions(ctx context.Context, db *sql.DB, now time.Time, limit int) ([]models.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE pub_date <= $1
		ORDER BY pub_date DESC, id DESC
		LIMIT $2
	`, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func scanQuestion(row *sql.Row) (models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.QuestionText, &q.PubDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question: %w", err)
	}
	return q, nil
}

// InsertChoice adds a choice to an existing question
func InsertChoice(ctx context.Context, db *sql.DB, questionID int64, text string, votes int) (models.Choice, error) {
	if err := ValidateText(text, models.MaxChoiceTextLen); err != nil {
		return models.Choice{}, err
	}
	if votes < 0 {
		return models.Choice{}, fmt.Errorf("votes must be non-negative, got %d", votes)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM question WHERE id = $1)
	`, questionID).Scan(&exists)
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to check question: %w", err)
	}
	if !exists {
		return models.Choice{}, ErrQuestionNotFound
	}

	c := models.Choice{QuestionID: questionID, ChoiceText: text, Votes: votes}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO choice (question_id, choice_text, votes)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.QuestionID, c.ChoiceText, c.Votes).Scan(&c.ID)
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to insert choice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Choice{}, fmt.Errorf("failed to commit choice: %w", err)
	}

	return c, nil
}

// GetChoice returns a single choice by ID
func GetChoice(ctx context.Context, db *sql.DB, id int64) (models.Choice, error) {
	var c models.Choice
	err := db.QueryRowContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE id = $1
	`, id).Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Choice{}, ErrChoiceNotFound
	}
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to query choice: %w", err)
	}
	return c, nil
}

// ChoicesForQuestion returns a question's choices in creation order
func ChoicesForQuestion(ctx context.Context, db *sql.DB, questionID int64) ([]models.Choice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE question_id = $1
		ORDER BY id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}

	return choices, rows.Err()
}

// RecordVote adds exactly one vote to a choice of the given question.
// The increment happens in SQL so concurrent votes are never lost.
func RecordVote(ctx context.Context, db *sql.DB, questionID, choiceID int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE choice
		SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	if n == 0 {
		return ErrChoiceNotFound
	}

	return nil
}
