// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-polls/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	ddl := sqliteSchema
	if databaseType == cliparse.DatabasePostgres {
		ddl = postgresSchema
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Questions
CREATE TABLE IF NOT EXISTS question (
    id BIGSERIAL PRIMARY KEY,
    question_text VARCHAR(200) NOT NULL,
    pub_date TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_pub_date ON question(pub_date);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id BIGSERIAL PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    choice_text VARCHAR(200) NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);
`

const sqliteSchema = `
-- Questions
CREATE TABLE IF NOT EXISTS question (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_text VARCHAR(200) NOT NULL,
    pub_date TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_pub_date ON question(pub_date);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    choice_text VARCHAR(200) NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);
`
