// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-polls/cliparse"
	"github.com/danielhkuo/quickly-polls/csrf"
	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/factory"
	"github.com/danielhkuo/quickly-polls/models"
)

// TestDBURLEnv names a PostgreSQL database to test against instead of
// in-memory SQLite. The tables in it are dropped and recreated.
const TestDBURLEnv = "TEST_DATABASE_URL"

const testSQLiteURL = "file::memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if dsn := os.Getenv(TestDBURLEnv); dsn != "" {
		return setupPostgres(t, dsn)
	}

	conn, err := sql.Open(cliparse.DatabaseSQLite, db.SQLiteDSN(testSQLiteURL))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

func setupPostgres(t *testing.T, dsn string) *sql.DB {
	t.Helper()

	conn, err := sql.Open(cliparse.DatabasePostgres, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Clean up tables before each test
	_, err = conn.Exec(`
		DROP TABLE IF EXISTS choice CASCADE;
		DROP TABLE IF EXISTS question CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	if err := db.CreateSchema(conn, cliparse.DatabasePostgres); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  testSQLiteURL,
	}
}

// Days converts a day count to a duration for CreateQuestion offsets
func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// CreateTestQuestion stores a question published offset from now.
// Negative offsets are in the past.
func CreateTestQuestion(t *testing.T, conn *sql.DB, text string, offset time.Duration) models.Question {
	t.Helper()

	q, err := factory.NewQuestionFactory(conn).Create(context.Background(),
		factory.WithText(text),
		factory.PublishedIn(offset),
	)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return q
}

// CreateTestChoice adds a choice with a starting vote count to a question
func CreateTestChoice(t *testing.T, conn *sql.DB, question models.Question, text string, votes int) models.Choice {
	t.Helper()

	c, err := factory.NewChoiceFactory(conn).Create(context.Background(), question,
		factory.WithChoiceText(text),
		factory.WithVotes(votes),
	)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return c
}

// GetVotes reads a choice's current vote count
func GetVotes(t *testing.T, conn *sql.DB, choiceID int64) int {
	t.Helper()

	c, err := db.GetChoice(context.Background(), conn, choiceID)
	if err != nil {
		t.Fatalf("Failed to get choice %d: %v", choiceID, err)
	}

	return c.Votes
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a urlencoded POST request
func MakeFormRequest(path string, form url.Values, headers map[string]string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithCSRF adds a matching csrftoken cookie and X-CSRFToken header
func WithCSRF(req *http.Request) *http.Request {
	token, _ := csrf.GenerateToken()
	req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: token})
	req.Header.Set(csrf.HeaderName, token)
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertContains checks that the body contains text after HTML escaping
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, text string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), html.EscapeString(text)) {
		t.Errorf("Expected body to contain %q. Body: %s", html.EscapeString(text), w.Body.String())
	}
}

// AssertNotContains checks that the escaped text is absent from the body
func AssertNotContains(t *testing.T, w *httptest.ResponseRecorder, text string) {
	t.Helper()
	if strings.Contains(w.Body.String(), html.EscapeString(text)) {
		t.Errorf("Expected body not to contain %q", html.EscapeString(text))
	}
}

// AssertRedirect checks for a 302 to the expected location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusFound, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
