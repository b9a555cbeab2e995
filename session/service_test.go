// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/session"
	"github.com/danielhkuo/pickme/store"
	"github.com/danielhkuo/pickme/testutil"
)

type firstTwo struct{}

func (firstTwo) IntN(int) int { return 0 }

func setup(t *testing.T, opts ...session.Option) (*session.Service, *store.Store, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, store.SQLite)
	return session.NewService(st, opts...), st, conn
}

func cardIDs(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, cards := testutil.CreateTestDeckWithCards(t, st, "A", "B", "C")

	view, created, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("expected a new session")
	}
	if view.Mode != models.ModeSwipe || view.Status != models.StatusActive {
		t.Errorf("got mode %s status %s", view.Mode, view.Status)
	}
	if !slices.Equal(view.Remaining, cards) {
		t.Errorf("remaining = %v, want %v", view.Remaining, cards)
	}
	if !slices.Equal(cardIDs(view.RemainingCards), cards) {
		t.Errorf("remainingCards out of order: %v", cardIDs(view.RemainingCards))
	}
	if len(view.Smashed) != 0 || len(view.Passed) != 0 || len(view.PassedCards) != 0 {
		t.Errorf("expected empty smashed/passed, got %+v", view.Partition)
	}
	if view.Winner != nil {
		t.Error("active session must not have a winner")
	}
}

func TestCreate_Errors(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	emptyDeck := testutil.CreateTestDeck(t, st, "Empty")
	fullDeck, _ := testutil.CreateTestDeckWithCards(t, st, "A")

	tests := []struct {
		name   string
		deckID string
		mode   models.Mode
		want   error
	}{
		{"missing deck", "no-such-deck", "", session.ErrNotFound},
		{"empty deck", emptyDeck, "", session.ErrEmptyDeck},
		{"bad mode", fullDeck, "bracket", session.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Create(ctx, tt.deckID, nil, tt.mode)
			if !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreate_ExtendsActiveSession(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, cards := testutil.CreateTestDeckWithCards(t, st, "A", "B")

	first, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Decide(ctx, models.DecisionInput{SessionID: first.ID, CardID: cards[0], Decision: models.DecisionPass}); err != nil {
		t.Fatal(err)
	}

	// Nothing new: same session, unchanged
	again, created, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if created || again.ID != first.ID {
		t.Errorf("expected existing session %s, got %s (created=%v)", first.ID, again.ID, created)
	}
	if !slices.Equal(again.Remaining, cards[1:]) {
		t.Errorf("remaining = %v, want %v", again.Remaining, cards[1:])
	}

	// A card added later joins the end of remaining
	added := testutil.AddTestCard(t, st, deckID, "C")
	extended, created, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if created || extended.ID != first.ID {
		t.Error("expected the active session to be extended")
	}
	want := []string{cards[1], added}
	if !slices.Equal(extended.Remaining, want) {
		t.Errorf("remaining = %v, want %v", extended.Remaining, want)
	}
	if !slices.Equal(extended.Passed, cards[:1]) {
		t.Errorf("passed = %v, want %v", extended.Passed, cards[:1])
	}
}

func TestCreate_AfterFinishStartsNewSession(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, _ := testutil.CreateTestDeckWithCards(t, st, "A", "B")

	first, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Finish(ctx, first.ID); err != nil {
		t.Fatal(err)
	}

	second, created, err := svc.Create(ctx, deckID, nil, models.ModeDuel)
	if err != nil {
		t.Fatal(err)
	}
	if !created || second.ID == first.ID {
		t.Error("expected a fresh session after finish")
	}
	if second.Mode != models.ModeDuel {
		t.Errorf("mode = %s, want duel", second.Mode)
	}
}

func TestCreate_OneCardDuelFinishes(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "Only")

	view, created, err := svc.Create(ctx, deckID, nil, models.ModeDuel)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("expected a new session")
	}
	if view.Status != models.StatusFinished {
		t.Errorf("status = %s, want finished", view.Status)
	}
	if view.Winner == nil || view.Winner.ID != c[0] {
		t.Errorf("winner = %+v, want %s", view.Winner, c[0])
	}
}

func TestScenario_SwipeThenDuel(t *testing.T) {
	ctx := context.Background()
	svc, st, conn := setup(t, session.WithRand(firstTwo{}))

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B", "C")
	a, b, cc := c[0], c[1], c[2]

	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	id := view.ID

	decide := func(card string, d models.Decision) models.SessionView {
		t.Helper()
		v, err := svc.Decide(ctx, models.DecisionInput{SessionID: id, CardID: card, Decision: d, Round: 1})
		if err != nil {
			t.Fatalf("Decide(%s) error = %v", d, err)
		}
		return v
	}

	view = decide(a, models.DecisionPass)
	if !slices.Equal(view.Remaining, []string{b, cc}) || !slices.Equal(cardIDs(view.PassedCards), []string{a}) {
		t.Fatalf("after pass(A): %+v", view.Partition)
	}

	decide(b, models.DecisionSmash)
	view = decide(cc, models.DecisionSmash)
	if view.Status != models.StatusActive || !slices.Equal(view.Smashed, []string{b, cc}) {
		t.Fatalf("after smashing B and C: status %s, %+v", view.Status, view.Partition)
	}

	view, err = svc.StartDuel(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if view.Mode != models.ModeDuel || !slices.Equal(view.Remaining, []string{b, cc}) || len(view.Smashed) != 0 {
		t.Fatalf("after start-duel: mode %s, %+v", view.Mode, view.Partition)
	}

	pair, err := svc.DuelPair(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if pair.Card1.ID != b || pair.Card2.ID != cc {
		t.Errorf("pair = %s,%s; want B,C", pair.Card1.Title, pair.Card2.Title)
	}

	view = decide(b, models.DecisionPass)
	if view.Status != models.StatusFinished {
		t.Fatalf("status = %s, want finished", view.Status)
	}
	if !slices.Equal(view.Remaining, []string{cc}) || !slices.Equal(view.Passed, []string{a, b}) {
		t.Errorf("final partition %+v", view.Partition)
	}
	if view.Winner == nil || view.Winner.ID != cc || view.Winner.Title != "C" {
		t.Errorf("winner = %+v, want C", view.Winner)
	}

	if n := testutil.CountVotes(t, conn, id); n != 4 {
		t.Errorf("expected 4 votes, got %d", n)
	}

	// Persisted state matches what was returned
	stored, err := svc.State(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.StatusFinished || stored.Winner == nil || stored.Winner.ID != cc {
		t.Errorf("stored state %+v", stored)
	}

	if _, err := svc.Decide(ctx, models.DecisionInput{SessionID: id, CardID: cc, Decision: models.DecisionSmash}); !errors.Is(err, session.ErrInvalidState) {
		t.Errorf("Decide(finished) error = %v, want invalid state", err)
	}
}

func TestScenario_SingleSurvivor(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B")
	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Decide(ctx, models.DecisionInput{SessionID: view.ID, CardID: c[0], Decision: models.DecisionPass}); err != nil {
		t.Fatal(err)
	}
	view, err = svc.Decide(ctx, models.DecisionInput{SessionID: view.ID, CardID: c[1], Decision: models.DecisionSmash})
	if err != nil {
		t.Fatal(err)
	}

	if view.Status != models.StatusFinished {
		t.Fatalf("status = %s, want finished", view.Status)
	}
	if view.Winner == nil || view.Winner.ID != c[1] {
		t.Errorf("winner = %+v, want B", view.Winner)
	}
}

func TestDecide_FailuresLeaveNoTrace(t *testing.T) {
	ctx := context.Background()
	svc, st, conn := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B")
	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   models.DecisionInput
		want error
	}{
		{"missing session", models.DecisionInput{SessionID: "nope", CardID: c[0], Decision: models.DecisionPass}, session.ErrNotFound},
		{"bad decision", models.DecisionInput{SessionID: view.ID, CardID: c[0], Decision: "meh"}, session.ErrInvalidInput},
		{"foreign card", models.DecisionInput{SessionID: view.ID, CardID: "other", Decision: models.DecisionPass}, session.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Decide(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Decide() error = %v, want %v", err, tt.want)
			}
		})
	}

	if n := testutil.CountVotes(t, conn, view.ID); n != 0 {
		t.Errorf("failed decisions recorded %d votes", n)
	}
	after, err := svc.State(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(after.Remaining, c) {
		t.Errorf("remaining changed to %v", after.Remaining)
	}
}

func TestRestoreAndReswipe(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B", "C")
	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	id := view.ID

	if _, err := svc.Reswipe(ctx, id); !errors.Is(err, session.ErrInsufficientCards) {
		t.Errorf("Reswipe() with nothing smashed error = %v", err)
	}

	svc.Decide(ctx, models.DecisionInput{SessionID: id, CardID: c[0], Decision: models.DecisionPass})
	svc.Decide(ctx, models.DecisionInput{SessionID: id, CardID: c[1], Decision: models.DecisionSmash})

	view, err = svc.Restore(ctx, id, c[0])
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(view.Remaining, []string{c[2], c[0]}) || len(view.Passed) != 0 {
		t.Errorf("after restore %+v", view.Partition)
	}
	if _, err := svc.Restore(ctx, id, c[0]); !errors.Is(err, session.ErrInvalidInput) {
		t.Errorf("second Restore() error = %v, want invalid input", err)
	}

	view, err = svc.Reswipe(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(view.Remaining, []string{c[1]}) || len(view.Smashed) != 0 || view.Mode != models.ModeSwipe {
		t.Errorf("after reswipe %+v", view.Partition)
	}
}

func TestStartDuel_ReturnToSwipe(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B", "C")
	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	id := view.ID

	svc.Decide(ctx, models.DecisionInput{SessionID: id, CardID: c[0], Decision: models.DecisionSmash})
	if _, err := svc.StartDuel(ctx, id); !errors.Is(err, session.ErrInsufficientCards) {
		t.Errorf("StartDuel() with one smashed error = %v", err)
	}

	svc.Decide(ctx, models.DecisionInput{SessionID: id, CardID: c[1], Decision: models.DecisionSmash})
	if _, err := svc.StartDuel(ctx, id); err != nil {
		t.Fatal(err)
	}

	view, err = svc.ReturnToSwipe(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if view.Mode != models.ModeSwipe || !slices.Equal(view.Remaining, c[:2]) || len(view.Smashed) != 0 {
		t.Errorf("after return-to-swipe mode %s %+v", view.Mode, view.Partition)
	}
}

func TestDuelPair_SkipsDeletedCards(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B", "C")
	view, _, err := svc.Create(ctx, deckID, nil, models.ModeDuel)
	if err != nil {
		t.Fatal(err)
	}

	if err := st.DeleteCard(ctx, c[0]); err != nil {
		t.Fatal(err)
	}

	for range 20 {
		pair, err := svc.DuelPair(ctx, view.ID)
		if err != nil {
			t.Fatal(err)
		}
		if pair.Card1.ID == c[0] || pair.Card2.ID == c[0] {
			t.Fatal("deleted card offered in a duel")
		}
		if pair.Card1.ID == pair.Card2.ID {
			t.Fatal("pair repeats a card")
		}
	}

	if err := st.DeleteCard(ctx, c[1]); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DuelPair(ctx, view.ID); !errors.Is(err, session.ErrInsufficientCards) {
		t.Errorf("DuelPair() error = %v, want insufficient cards", err)
	}
}

func TestFinish_ReportsWinnerWhenUnambiguous(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := setup(t)

	deckID, c := testutil.CreateTestDeckWithCards(t, st, "A", "B")
	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}

	ambiguous, err := svc.Finish(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ambiguous.Status != models.StatusFinished || ambiguous.Winner != nil {
		t.Errorf("expected finished without winner, got %+v", ambiguous)
	}

	// Restore needs an active session
	if _, err := svc.Restore(ctx, view.ID, c[0]); !errors.Is(err, session.ErrInvalidState) {
		t.Errorf("Restore() on finished session error = %v", err)
	}
}

func TestDecide_ConcurrentDecisionsStayDisjoint(t *testing.T) {
	ctx := context.Background()
	svc, st, conn := setup(t)

	titles := make([]string, 12)
	for i := range titles {
		titles[i] = fmt.Sprintf("card-%d", i)
	}
	deckID, c := testutil.CreateTestDeckWithCards(t, st, titles...)

	view, _, err := svc.Create(ctx, deckID, nil, "")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i, cardID := range c {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := models.DecisionPass
			if i%2 == 0 {
				d = models.DecisionSmash
			}
			if _, err := svc.Decide(ctx, models.DecisionInput{SessionID: view.ID, CardID: cardID, Decision: d}); err != nil {
				failures.Add(1)
				t.Errorf("Decide() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.FailNow()
	}

	final, err := svc.State(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !session.Disjoint(final.Partition) {
		t.Fatalf("partitions overlap: %+v", final.Partition)
	}
	if len(final.Remaining) != 0 || len(final.Smashed) != 6 || len(final.Passed) != 6 {
		t.Errorf("lost updates: %+v", final.Partition)
	}
	if final.Status != models.StatusActive {
		t.Errorf("status = %s, want active awaiting duel", final.Status)
	}
	if n := testutil.CountVotes(t, conn, view.ID); n != len(c) {
		t.Errorf("expected %d votes, got %d", len(c), n)
	}
}
