// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/session"
	"github.com/danielhkuo/pickme/testutil"
)

// TestConcurrentDecisions verifies that simultaneous decisions on one
// session neither lose updates nor leave a card in two piles
func TestConcurrentDecisions(t *testing.T) {
	h, st, conn := setupSessions(t)

	titles := make([]string, 10)
	for i := range titles {
		titles[i] = fmt.Sprintf("Card %d", i)
	}
	deckID, ids := testutil.CreateTestDeckWithCards(t, st, titles...)

	w := createSession(t, h, deckID, nil)
	var view models.SessionView
	testutil.AssertJSON(t, w, &view)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i, cardID := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()

			decision := models.DecisionPass
			if i < 3 {
				decision = models.DecisionSmash
			}
			w := postSession(t, h, "decision", view.ID, models.DecisionRequest{CardID: cardID, Decision: decision})
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != len(ids) {
		t.Errorf("Expected %d successful decisions, got %d", len(ids), successCount.Load())
	}

	final, err := session.NewService(st).State(t.Context(), view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !session.Disjoint(final.Partition) {
		t.Fatalf("partitions overlap: %+v", final.Partition)
	}
	if len(final.Remaining) != 0 || len(final.Smashed) != 3 || len(final.Passed) != 7 {
		t.Errorf("unexpected final partition %+v", final.Partition)
	}

	if n := testutil.CountVotes(t, conn, view.ID); n != len(ids) {
		t.Errorf("Expected %d votes in database, got %d", len(ids), n)
	}
}

// TestConcurrentSessionCreation verifies that racing creates for one deck
// converge on a single active session
func TestConcurrentSessionCreation(t *testing.T) {
	h, st, conn := setupSessions(t)

	deckID, _ := testutil.CreateTestDeckWithCards(t, st, "A", "B", "C")

	const callers = 8
	var created atomic.Int32
	var wg sync.WaitGroup
	sessionIDs := make([]string, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := createSession(t, h, deckID, nil)
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusOK:
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
				return
			}
			var v models.SessionView
			if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
				t.Errorf("decode session: %v", err)
				return
			}
			sessionIDs[i] = v.ID
		}()
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("expected exactly one 201, got %d", created.Load())
	}
	for _, id := range sessionIDs[1:] {
		if id != sessionIDs[0] {
			t.Errorf("callers saw different sessions: %v", sessionIDs)
			break
		}
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM deck_session WHERE deck_id = $1`, deckID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 session row, got %d", count)
	}
}
