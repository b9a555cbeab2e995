// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pickme/cliparse"
	"github.com/danielhkuo/pickme/db"
	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/store"
)

// TestDBURL is an in-memory SQLite database, private to each connection pool
const TestDBURL = ":memory:"

// SetupTestDB opens a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, _, err := db.Open(string(store.SQLite), TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps a fresh test database in a Store
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t), store.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   string(store.SQLite),
		AllowedOrigins: []string{"*"},
		VoteHashSalt:   "test-vote-salt",
	}
}

// CreateTestDeck inserts a deck and returns its ID
func CreateTestDeck(t *testing.T, s *store.Store, title string) string {
	t.Helper()

	now := time.Now().UTC()
	id := uuid.NewString()
	err := s.CreateDeck(context.Background(), models.Deck{
		ID:        id,
		Title:     title,
		Slug:      "deck-" + id[:8],
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to create test deck: %v", err)
	}

	return id
}

// AddTestCard appends a card to a deck and returns the card ID
func AddTestCard(t *testing.T, s *store.Store, deckID, title string) string {
	t.Helper()

	ctx := context.Background()
	position, err := s.NextCardPosition(ctx, deckID)
	if err != nil {
		t.Fatalf("Failed to get card position: %v", err)
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	err = s.CreateCard(ctx, models.Card{
		ID:        id,
		DeckID:    deckID,
		Title:     title,
		Metadata:  map[string]any{},
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}

	return id
}

// CreateTestDeckWithCards creates a deck holding one card per title, in order
func CreateTestDeckWithCards(t *testing.T, s *store.Store, titles ...string) (deckID string, cardIDs []string) {
	t.Helper()

	deckID = CreateTestDeck(t, s, "Test Deck")
	for _, title := range titles {
		cardIDs = append(cardIDs, AddTestCard(t, s, deckID, title))
	}
	return deckID, cardIDs
}

// CountVotes returns how many votes a session has recorded
func CountVotes(t *testing.T, conn *sql.DB, sessionID string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE session_id = $1`, sessionID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
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

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
