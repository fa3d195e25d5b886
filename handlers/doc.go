// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP views of the polls application.

# Handler Types

Each handler is a struct holding the database connection:

  - PollHandler: Index and detail pages
  - ResultsHandler: Vote tallies
  - VotingHandler: Vote submission

Handlers are created via constructor functions that accept *sql.DB:

	pollHandler := handlers.NewPollHandler(db)

# Visibility

Only questions whose pub_date is not in the future exist as far as
visitors are concerned. Detail, results, and vote answer 404 for future
questions exactly as for missing ones.

# Voting Flow

	GET  /polls/{id}/         → Detail (form with CSRF token)
	POST /polls/{id}/vote/    → Vote (302 to results)
	GET  /polls/{id}/results/ → Results

A vote without a valid choice of that question redisplays the form with
"You didn't select a choice." and changes nothing.

# Content Negotiation

Requests with Accept: application/json get the page data as JSON
instead of HTML. Vote also accepts a JSON body:

	{"choice": 3}
*/
package handlers
