// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polls server.

Visitors browse published questions, pick one choice per question, and
see the running tally. Pages are server-rendered HTML; every page also
answers with JSON when the request sends Accept: application/json.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

PostgreSQL instead:

	go run . -t postgres -d "postgres://..."

Seed a few demo questions on startup:

	go run . -seed 5

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:polls.db for sqlite)
  - SEED_QUESTIONS (-seed): Demo questions to create on startup
  - ENV_FILE (-env): .env file to load before reading the variables above

# Architecture

  - handlers: Index, detail, results, and vote views
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request logging, CSRF check, JSON helpers
  - templates: Embedded HTML pages and stylesheet
  - models: Question, Choice, and page data
  - csrf: Token generation and comparison
  - db: Connection, schema, and queries
  - factory: Question and Choice factories for tests and seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
