// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema, and runs the question
and choice queries.

# Drivers

Open picks the driver from cliparse.Config.DatabaseType:

  - sqlite: modernc.org/sqlite (pure Go), foreign keys enabled, one connection
  - postgres: github.com/lib/pq

Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables for the chosen dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

	question 1──* choice

The choice foreign key uses ON DELETE CASCADE, and votes can never go
negative.

# Queries

Publication filtering takes the current time as a parameter so callers
and tests agree on "now":

	q, err := db.GetPublishedQuestion(ctx, conn, id, time.Now())
	latest, err := db.LatestPublishedQuestions(ctx, conn, time.Now(), 5)

RecordVote adds one vote with a single UPDATE, so concurrent votes are
never lost. It returns ErrChoiceNotFound when the choice does not belong
to the question.
*/
package db
