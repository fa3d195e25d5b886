// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/quickly-polls/cliparse"
	"github.com/danielhkuo/quickly-polls/db"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/testutil"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn      string
		expected string
	}{
		{"file:polls.db", "file:polls.db?_pragma=foreign_keys(1)"},
		{"file::memory:", "file::memory:?_pragma=foreign_keys(1)"},
		{"file:polls.db?cache=shared", "file:polls.db?cache=shared&_pragma=foreign_keys(1)"},
		{"file:polls.db?_pragma=foreign_keys(0)", "file:polls.db?_pragma=foreign_keys(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			if got := db.SQLiteDSN(tt.dsn); got != tt.expected {
				t.Errorf("SQLiteDSN(%q) = %q, want %q", tt.dsn, got, tt.expected)
			}
		})
	}
}

func TestOpen_SQLite(t *testing.T) {
	cfg := testutil.GetTestConfig()

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("Expected one SQLite connection, got %d", got)
	}

	var enabled int
	if err := conn.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("Failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("Expected foreign keys to be enabled")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
			t.Fatalf("CreateSchema call %d failed: %v", i+1, err)
		}
	}
}

func TestInsertQuestion_Validation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"normal text", "What's new?", false},
		{"max length", strings.Repeat("q", models.MaxQuestionTextLen), false},
		{"multibyte at max length", strings.Repeat("é", models.MaxQuestionTextLen), false},
		{"too long", strings.Repeat("q", models.MaxQuestionTextLen+1), true},
		{"empty", "", true},
		{"blank", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := db.InsertQuestion(context.Background(), conn, tt.text, time.Now())
			if tt.wantErr {
				if !errors.Is(err, db.ErrInvalidText) {
					t.Errorf("Expected ErrInvalidText, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if q.ID <= 0 {
				t.Errorf("Expected assigned ID, got %d", q.ID)
			}
		})
	}
}

func TestGetQuestion_RoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	ctx := context.Background()

	pubDate := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("EST", -5*3600))
	inserted, err := db.InsertQuestion(ctx, conn, "Round trip?", pubDate)
	if err != nil {
		t.Fatalf("InsertQuestion failed: %v", err)
	}

	got, err := db.GetQuestion(ctx, conn, inserted.ID)
	if err != nil {
		t.Fatalf("GetQuestion failed: %v", err)
	}

	if got.QuestionText != "Round trip?" {
		t.Errorf("Expected text 'Round trip?', got %q", got.QuestionText)
	}
	if !got.PubDate.Equal(pubDate) {
		t.Errorf("Expected pub_date %v, got %v", pubDate, got.PubDate)
	}

	if _, err := db.GetQuestion(ctx, conn, inserted.ID+100); !errors.Is(err, db.ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound, got %v", err)
	}
}

func TestGetPublishedQuestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	ctx := context.Background()
	now := time.Now()

	past, err := db.InsertQuestion(ctx, conn, "Past", now.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	future, err := db.InsertQuestion(ctx, conn, "Future", now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	exact, err := db.InsertQuestion(ctx, conn, "Exactly now", now)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{"past question", past.ID, nil},
		{"published exactly now", exact.ID, nil},
		{"future question", future.ID, db.ErrQuestionNotFound},
		{"missing question", 9999, db.ErrQuestionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := db.GetPublishedQuestion(ctx, conn, tt.id, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if q.ID != tt.id {
				t.Errorf("Expected question %d, got %d", tt.id, q.ID)
			}
		})
	}
}

func TestLatestPublishedQuestions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	ctx := context.Background()
	now := time.Now()

	for _, q := range []struct {
		text   string
		offset time.Duration
	}{
		{"three days ago", -72 * time.Hour},
		{"one day ago", -24 * time.Hour},
		{"tomorrow", 24 * time.Hour},
		{"two days ago", -48 * time.Hour},
		{"an hour ago", -time.Hour},
	} {
		if _, err := db.InsertQuestion(ctx, conn, q.text, now.Add(q.offset)); err != nil {
			t.Fatal(err)
		}
	}

	texts := func(qs []models.Question) []string {
		out := make([]string, len(qs))
		for i, q := range qs {
			out[i] = q.QuestionText
		}
		return out
	}

	got, err := db.LatestPublishedQuestions(ctx, conn, now, 5)
	if err != nil {
		t.Fatalf("LatestPublishedQuestions failed: %v", err)
	}
	expected := []string{"an hour ago", "one day ago", "two days ago", "three days ago"}
	if diff := cmp.Diff(expected, texts(got)); diff != "" {
		t.Errorf("Unexpected questions (-want +got):\n%s", diff)
	}

	got, err = db.LatestPublishedQuestions(ctx, conn, now, 2)
	if err != nil {
		t.Fatalf("LatestPublishedQuestions failed: %v", err)
	}
	if diff := cmp.Diff(expected[:2], texts(got)); diff != "" {
		t.Errorf("Unexpected limited questions (-want +got):\n%s", diff)
	}
}

func TestLatestPublishedQuestions_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	got, err := db.LatestPublishedQuestions(context.Background(), conn, time.Now(), 5)
	if err != nil {
		t.Fatalf("LatestPublishedQuestions failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestInsertChoice(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	ctx := context.Background()

	q, err := db.InsertQuestion(ctx, conn, "Pick one", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid choice", func(t *testing.T) {
		c, err := db.InsertChoice(ctx, conn, q.ID, "First", 3)
		if err != nil {
			t.Fatalf("InsertChoice failed: %v", err)
		}
		got, err := db.GetChoice(ctx, conn, c.ID)
		if err != nil {
			t.Fatalf("GetChoice failed: %v", err)
		}
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("Stored choice mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		_, err := db.InsertChoice(ctx, conn, q.ID+100, "Orphan", 0)
		if !errors.Is(err, db.ErrQuestionNotFound) {
			t.Errorf("Expected ErrQuestionNotFound, got %v", err)
		}
	})

	t.Run("negative votes", func(t *testing.T) {
		if _, err := db.InsertChoice(ctx, conn, q.ID, "Negative", -1); err == nil {
			t.Error("Expected error for negative votes")
		}
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := db.InsertChoice(ctx, conn, q.ID, "", 0)
		if !errors.Is(err, db.ErrInvalidText) {
			t.Errorf("Expected ErrInvalidText, got %v", err)
		}
	})

	t.Run("missing choice", func(t *testing.T) {
		if _, err := db.GetChoice(ctx, conn, 9999); !errors.Is(err, db.ErrChoiceNotFound) {
			t.Errorf("Expected ErrChoiceNotFound, got %v", err)
		}
	})
}

func TestChoicesForQuestion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	q := testutil.CreateTestQuestion(t, conn, "Ordered?", -time.Hour)
	other := testutil.CreateTestQuestion(t, conn, "Other", -time.Hour)
	a := testutil.CreateTestChoice(t, conn, q, "A", 1)
	testutil.CreateTestChoice(t, conn, other, "X", 0)
	b := testutil.CreateTestChoice(t, conn, q, "B", 2)

	got, err := db.ChoicesForQuestion(context.Background(), conn, q.ID)
	if err != nil {
		t.Fatalf("ChoicesForQuestion failed: %v", err)
	}
	if diff := cmp.Diff([]models.Choice{a, b}, got); diff != "" {
		t.Errorf("Unexpected choices (-want +got):\n%s", diff)
	}
}

func TestRecordVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	ctx := context.Background()

	q := testutil.CreateTestQuestion(t, conn, "Vote?", -time.Hour)
	other := testutil.CreateTestQuestion(t, conn, "Other?", -time.Hour)
	choice := testutil.CreateTestChoice(t, conn, q, "Yes", 4)
	foreign := testutil.CreateTestChoice(t, conn, other, "No", 0)

	if err := db.RecordVote(ctx, conn, q.ID, choice.ID); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}
	if votes := testutil.GetVotes(t, conn, choice.ID); votes != 5 {
		t.Errorf("Expected 5 votes, got %d", votes)
	}

	if err := db.RecordVote(ctx, conn, q.ID, foreign.ID); !errors.Is(err, db.ErrChoiceNotFound) {
		t.Errorf("Expected ErrChoiceNotFound for another question's choice, got %v", err)
	}
	if err := db.RecordVote(ctx, conn, q.ID, 9999); !errors.Is(err, db.ErrChoiceNotFound) {
		t.Errorf("Expected ErrChoiceNotFound for missing choice, got %v", err)
	}
	if votes := testutil.GetVotes(t, conn, foreign.ID); votes != 0 {
		t.Errorf("Expected foreign choice to keep 0 votes, got %d", votes)
	}
}

func TestRecordVote_Concurrent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	q := testutil.CreateTestQuestion(t, conn, "Race?", -time.Hour)
	choice := testutil.CreateTestChoice(t, conn, q, "Fast", 0)

	const voters = 50
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.RecordVote(context.Background(), conn, q.ID, choice.ID)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("RecordVote failed: %v", err)
		}
	}
	if votes := testutil.GetVotes(t, conn, choice.ID); votes != voters {
		t.Errorf("Expected %d votes, got %d", voters, votes)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	ctx := context.Background()

	q := testutil.CreateTestQuestion(t, conn, "Short lived", -time.Hour)
	c := testutil.CreateTestChoice(t, conn, q, "Gone soon", 0)

	if _, err := conn.ExecContext(ctx, `DELETE FROM question WHERE id = $1`, q.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := db.GetChoice(ctx, conn, c.ID); !errors.Is(err, db.ErrChoiceNotFound) {
		t.Errorf("Expected choice to be deleted with its question, got %v", err)
	}
}
