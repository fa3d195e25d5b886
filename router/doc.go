// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls application.

# Route Registration

NewRouter returns an http.Handler wrapping a configured http.ServeMux:

	handler := router.NewRouter(db)

The whole mux sits behind middleware.CSRF, so every response carries a
csrftoken cookie and every POST must echo it back.

# Endpoints

	GET  /health               - Liveness check
	GET  /                     - Redirects to /polls/
	GET  /polls/               - Latest five published questions
	GET  /polls/{id}/          - Voting form
	GET  /polls/{id}/results/  - Vote tallies
	POST /polls/{id}/vote/     - Record a vote, redirect to results
	GET  /static/              - Embedded stylesheet

Paths missing their trailing slash, such as /polls/1, are redirected
to the slashed form with 301 Moved Permanently.
*/
package router
