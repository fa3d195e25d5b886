// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-polls/handlers"
	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/templates"
)

func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db)
	votingHandler := handlers.NewVotingHandler(db)
	resultsHandler := handlers.NewResultsHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls app
	mux.HandleFunc("GET /polls/{$}", middleware.WithLogging(pollHandler.Index))
	mux.HandleFunc("GET /polls/{id}/{$}", middleware.WithLogging(pollHandler.Detail))
	mux.HandleFunc("GET /polls/{id}/results/{$}", middleware.WithLogging(resultsHandler.Results))
	mux.HandleFunc("POST /polls/{id}/vote/{$}", middleware.WithLogging(votingHandler.Vote))

	// Stylesheet
	mux.Handle("GET /static/", http.StripPrefix("/static/", templates.Static()))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls/", http.StatusFound)
	})

	return middleware.CSRF(mux)
}
