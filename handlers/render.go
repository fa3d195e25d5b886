// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/templates"
)

var pages = templates.MustParse()

// renderPage writes data as JSON for JSON clients, otherwise as the named HTML page
func renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if middleware.WantsJSON(r) {
		middleware.JSONResponse(w, status, data)
		return
	}

	var buf bytes.Buffer
	if err := pages.Render(&buf, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		serverError(w, r, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func notFound(w http.ResponseWriter, r *http.Request, message string) {
	if middleware.WantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusNotFound, message)
		return
	}
	http.Error(w, message, http.StatusNotFound)
}

func serverError(w http.ResponseWriter, r *http.Request, message string) {
	if middleware.WantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusInternalServerError, message)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// parseID reads a positive integer path value
func parseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// loadPublishedQuestion resolves the {id} path value to a question visible
// now. It writes the 404 or 500 response itself and reports false on failure.
func loadPublishedQuestion(w http.ResponseWriter, r *http.Request, conn *sql.DB) (models.Question, bool) {
	id, ok := parseID(r, "id")
	if !ok {
		notFound(w, r, "Question not found")
		return models.Question{}, false
	}

	question, err := db.GetPublishedQuestion(r.Context(), conn, id, time.Now())
	if errors.Is(err, db.ErrQuestionNotFound) {
		notFound(w, r, "Question not found")
		return models.Question{}, false
	}
	if err != nil {
		slog.Error("failed to query question", "question_id", id, "error", err)
		serverError(w, r, "Database error")
		return models.Question{}, false
	}

	return question, true
}
