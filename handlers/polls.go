// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/templates"
)

type PollHandler struct {
	db *sql.DB
}

func NewPollHandler(db *sql.DB) *PollHandler {
	return &PollHandler{db: db}
}

// Index handles GET /polls/
// Lists the latest published questions, newest first. Future questions are hidden.
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := db.LatestPublishedQuestions(r.Context(), h.db, time.Now(), models.LatestQuestionsLimit)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		serverError(w, r, "Database error")
		return
	}

	renderPage(w, r, http.StatusOK, templates.IndexPage, models.IndexPage{
		LatestQuestionList: questions,
	})
}

// Detail handles GET /polls/{id}/
// Shows the voting form. Missing and future questions are 404.
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, ok := loadPublishedQuestion(w, r, h.db)
	if !ok {
		return
	}

	choices, err := db.ChoicesForQuestion(r.Context(), h.db, question.ID)
	if err != nil {
		slog.Error("failed to query choices", "question_id", question.ID, "error", err)
		serverError(w, r, "Database error")
		return
	}

	renderPage(w, r, http.StatusOK, templates.DetailPage, models.DetailPage{
		Question:  question,
		Choices:   choices,
		CSRFToken: middleware.CSRFToken(r),
	})
}
