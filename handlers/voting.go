// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/templates"
)

type VotingHandler struct {
	db *sql.DB
}

func NewVotingHandler(db *sql.DB) *VotingHandler {
	return &VotingHandler{db: db}
}

// Vote handles POST /polls/{id}/vote/
// Adds one vote to the selected choice and redirects to the results page.
// A missing or unknown choice redisplays the form with an error message.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	question, ok := loadPublishedQuestion(w, r, h.db)
	if !ok {
		return
	}

	if choiceID, ok := selectedChoice(r); ok {
		err := db.RecordVote(r.Context(), h.db, question.ID, choiceID)
		if err == nil {
			slog.Info("vote recorded", "question_id", question.ID, "choice_id", choiceID)
			http.Redirect(w, r, ResultsURL(question.ID), http.StatusFound)
			return
		}
		if !errors.Is(err, db.ErrChoiceNotFound) {
			slog.Error("failed to record vote", "question_id", question.ID, "choice_id", choiceID, "error", err)
			serverError(w, r, "Failed to record vote")
			return
		}
	}

	// Redisplay the voting form
	choices, err := db.ChoicesForQuestion(r.Context(), h.db, question.ID)
	if err != nil {
		slog.Error("failed to query choices", "question_id", question.ID, "error", err)
		serverError(w, r, "Database error")
		return
	}

	renderPage(w, r, http.StatusOK, templates.DetailPage, models.DetailPage{
		Question:     question,
		Choices:      choices,
		ErrorMessage: models.ErrNoChoiceSelected,
		CSRFToken:    middleware.CSRFToken(r),
	})
}

// selectedChoice reads the choice ID from a JSON body or the choice form field
func selectedChoice(r *http.Request) (int64, bool) {
	if middleware.IsJSONBody(r) {
		var req models.VoteRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil || req.Choice == nil {
			return 0, false
		}
		return *req.Choice, true
	}

	id, err := strconv.ParseInt(r.PostFormValue("choice"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ResultsURL is where a successful vote redirects
func ResultsURL(questionID int64) string {
	return fmt.Sprintf("/polls/%d/results/", questionID)
}
