// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and page types for the polls site.

# Domain Types

  - Question: question_text, pub_date
  - Choice: choice_text, votes, owning question_id

Question.WasPublishedRecently(now) is true when pub_date lies in the
24 hours up to and including now. Future questions are never recent.

# Page Types

Handlers fill one of these and render it as HTML, or write it as JSON
when the client asks for application/json:

  - IndexPage: latest_question_list
  - DetailPage: question, choices, error_message
  - ResultsPage: question, choices, total_votes

# Request Types

  - VoteRequest: choice (JSON alternative to the choice form field)

# Constants

	LatestQuestionsLimit = 5
	MaxQuestionTextLen   = 200
	MaxChoiceTextLen     = 200
	ErrNoChoiceSelected  = "You didn't select a choice."
*/
package models
