// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Field limits shared by the schema and input validation
const (
	MaxQuestionTextLen = 200
	MaxChoiceTextLen   = 200
)

// LatestQuestionsLimit is how many questions the index page lists
const LatestQuestionsLimit = 5

// ErrNoChoiceSelected is shown when a vote names no valid choice
const ErrNoChoiceSelected = "You didn't select a choice."

// Domain types

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

// String returns the question text
func (q Question) String() string {
	return q.QuestionText
}

// WasPublishedRecently reports whether the question was published within
// the 24 hours before now. Future questions are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-24*time.Hour)) && !q.PubDate.After(now)
}

// IsPublished reports whether the question is visible at now
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

func (c Choice) String() string {
	return c.ChoiceText
}

// Request types

// VoteRequest is the JSON form of a vote submission
type VoteRequest struct {
	Choice *int64 `json:"choice"`
}

// Page types. Each is rendered either as HTML or, for JSON clients, as is.

type IndexPage struct {
	LatestQuestionList []Question `json:"latest_question_list"`
}

type DetailPage struct {
	Question     Question `json:"question"`
	Choices      []Choice `json:"choices"`
	ErrorMessage string   `json:"error_message,omitempty"`
	CSRFToken    string   `json:"-"`
}

type ResultsPage struct {
	Question   Question `json:"question"`
	Choices    []Choice `json:"choices"`
	TotalVotes int      `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
