// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/templates"
)

type ResultsHandler struct {
	db *sql.DB
}

func NewResultsHandler(db *sql.DB) *ResultsHandler {
	return &ResultsHandler{db: db}
}

// Results handles GET /polls/{id}/results/
// Returns every choice with its vote count. Missing and future questions are 404.
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
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

	total := 0
	for _, c := range choices {
		total += c.Votes
	}

	renderPage(w, r, http.StatusOK, templates.ResultsPage, models.ResultsPage{
		Question:   question,
		Choices:    choices,
		TotalVotes: total,
	})
}
