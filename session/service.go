// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pickme/models"
)

// Service applies state machine transitions to stored sessions. Each
// mutating call is one read-modify-write inside a store transaction, guarded
// by a per-session lock.
type Service struct {
	store Store
	locks *keyedMutex
	rng   Rand
	now   func() time.Time
}

type Option func(*Service)

// WithRand sets the randomness used by DuelPair.
func WithRand(r Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithClock sets the time source for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		locks: newKeyedMutex(),
		rng:   globalRand{},
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session over every card of the deck, or extends the
// deck's active session with cards added since it started. created reports
// which of the two happened.
func (s *Service) Create(ctx context.Context, deckID string, ownerID *string, mode models.Mode) (view models.SessionView, created bool, err error) {
	if mode == "" {
		mode = models.ModeSwipe
	}
	if !mode.Valid() {
		return view, false, newError(CodeInvalidInput, "mode must be swipe or duel")
	}

	unlock, err := s.locks.Lock(ctx, "deck:"+deckID)
	if err != nil {
		return view, false, storeFailure("wait for deck", err)
	}
	defer unlock()

	var sess models.Session
	err = s.store.InTx(ctx, func(tx Store) error {
		if _, err := tx.LoadDeck(ctx, deckID); err != nil {
			return err
		}

		cardIDs, err := tx.LoadCardIDsByDeck(ctx, deckID)
		if err != nil {
			return fmt.Errorf("load deck cards: %w", err)
		}
		if len(cardIDs) == 0 {
			return newError(CodeEmptyDeck, "deck %s has no cards", deckID)
		}

		existing, err := tx.FindActiveSessionForDeck(ctx, deckID)
		if err != nil {
			return fmt.Errorf("find active session: %w", err)
		}

		if existing != nil {
			sess = *existing
			next, added := Extend(StateOf(sess), cardIDs)
			if len(added) == 0 {
				return nil
			}
			next.Apply(&sess)
			sess.UpdatedAt = s.now()
			return tx.SaveSession(ctx, sess)
		}

		now := s.now()
		sess = models.Session{
			ID:        uuid.NewString(),
			DeckID:    deckID,
			OwnerID:   ownerID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		NewState(cardIDs, mode).Apply(&sess)
		created = true
		return tx.CreateSession(ctx, sess)
	})
	if err != nil {
		return view, false, storeFailure("create session", err)
	}

	view, err = s.view(ctx, sess)
	return view, created, err
}

// State returns the current session with its cards materialised.
func (s *Service) State(ctx context.Context, id string) (models.SessionView, error) {
	sess, err := s.store.LoadSession(ctx, id)
	if err != nil {
		return models.SessionView{}, storeFailure("load session", err)
	}
	return s.view(ctx, sess)
}

// Decide records a vote and applies the decision in the same transaction.
func (s *Service) Decide(ctx context.Context, in models.DecisionInput) (models.SessionView, error) {
	if in.Round <= 0 {
		in.Round = 1
	}

	return s.mutate(ctx, in.SessionID, "record decision", func(tx Store, cur models.Session) (State, error) {
		next, err := Decide(StateOf(cur), in.CardID, in.Decision)
		if err != nil {
			return next, err
		}

		vote := models.Vote{
			ID:        uuid.NewString(),
			SessionID: cur.ID,
			CardID:    in.CardID,
			Decision:  in.Decision,
			Round:     in.Round,
			IPHash:    in.IPHash,
			UserAgent: in.UserAgent,
			CreatedAt: s.now(),
		}
		if err := tx.AppendVote(ctx, vote); err != nil {
			return next, fmt.Errorf("append vote: %w", err)
		}
		return next, nil
	})
}

func (s *Service) StartDuel(ctx context.Context, id string) (models.SessionView, error) {
	return s.mutate(ctx, id, "start duel", func(_ Store, cur models.Session) (State, error) {
		return StartDuel(StateOf(cur))
	})
}

func (s *Service) ReturnToSwipe(ctx context.Context, id string) (models.SessionView, error) {
	return s.mutate(ctx, id, "return to swipe", func(_ Store, cur models.Session) (State, error) {
		return ReturnToSwipe(StateOf(cur)), nil
	})
}

func (s *Service) Reswipe(ctx context.Context, id string) (models.SessionView, error) {
	return s.mutate(ctx, id, "reswipe", func(_ Store, cur models.Session) (State, error) {
		return Reswipe(StateOf(cur))
	})
}

func (s *Service) Restore(ctx context.Context, id, cardID string) (models.SessionView, error) {
	return s.mutate(ctx, id, "restore card", func(_ Store, cur models.Session) (State, error) {
		return Restore(StateOf(cur), cardID)
	})
}

// Finish forces the session to finished; the view carries the winner when
// exactly one candidate is left.
func (s *Service) Finish(ctx context.Context, id string) (models.SessionView, error) {
	return s.mutate(ctx, id, "finish session", func(_ Store, cur models.Session) (State, error) {
		return Finish(StateOf(cur)), nil
	})
}

// DuelPair draws two distinct cards from the duel pool. It never writes;
// the outcome is applied by the following Decide call.
func (s *Service) DuelPair(ctx context.Context, id string) (models.DuelPair, error) {
	sess, err := s.store.LoadSession(ctx, id)
	if err != nil {
		return models.DuelPair{}, storeFailure("load session", err)
	}

	pool, err := DuelCandidates(StateOf(sess))
	if err != nil {
		return models.DuelPair{}, err
	}

	// Cards deleted from the deck after the session started cannot be shown.
	cards, err := s.store.LoadCardsByIDs(ctx, pool)
	if err != nil {
		return models.DuelPair{}, storeFailure("load cards", err)
	}
	byID := indexCards(cards)
	present := make([]string, 0, len(pool))
	for _, cardID := range pool {
		if _, ok := byID[cardID]; ok {
			present = append(present, cardID)
		}
	}
	if len(present) < 2 {
		return models.DuelPair{}, newError(CodeInsufficientCards, "not enough cards for duel")
	}

	a, b := PickPair(present, s.rng)
	return models.DuelPair{Card1: byID[a], Card2: byID[b]}, nil
}

// mutate is the shared load-transition-save cycle.
func (s *Service) mutate(ctx context.Context, id, op string, fn func(tx Store, cur models.Session) (State, error)) (models.SessionView, error) {
	unlock, err := s.locks.Lock(ctx, "session:"+id)
	if err != nil {
		return models.SessionView{}, storeFailure("wait for "+op, err)
	}
	defer unlock()

	var sess models.Session
	err = s.store.InTx(ctx, func(tx Store) error {
		cur, err := tx.LoadSession(ctx, id)
		if err != nil {
			return err
		}

		next, err := fn(tx, cur)
		if err != nil {
			return err
		}
		if !Disjoint(next.Partition) {
			return newError(CodeInvalidState, "session %s partitions overlap", id)
		}

		sess = cur
		next.Apply(&sess)
		sess.UpdatedAt = s.now()
		return tx.SaveSession(ctx, sess)
	})
	if err != nil {
		return models.SessionView{}, storeFailure(op, err)
	}

	return s.view(ctx, sess)
}

func (s *Service) view(ctx context.Context, sess models.Session) (models.SessionView, error) {
	st := StateOf(sess)
	winnerID, hasWinner := Winner(st)

	ids := make([]string, 0, len(sess.Remaining)+len(sess.Passed)+1)
	ids = append(ids, sess.Remaining...)
	ids = append(ids, sess.Passed...)
	if hasWinner {
		ids = append(ids, winnerID)
	}

	cards, err := s.store.LoadCardsByIDs(ctx, dedup(ids))
	if err != nil {
		return models.SessionView{}, storeFailure("load cards", err)
	}
	byID := indexCards(cards)

	view := models.SessionView{
		Session:        sess,
		RemainingCards: inOrder(sess.Remaining, byID),
		PassedCards:    inOrder(sess.Passed, byID),
	}
	if hasWinner {
		if card, ok := byID[winnerID]; ok {
			view.Winner = &card
		}
	}
	return view, nil
}

func indexCards(cards []models.Card) map[string]models.Card {
	byID := make(map[string]models.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return byID
}

func inOrder(ids []string, byID map[string]models.Card) []models.Card {
	out := make([]models.Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
