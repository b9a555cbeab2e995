// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"slices"

	"github.com/danielhkuo/pickme/models"
)

// Decide applies one decision on cardID. The input state is never modified.
//
// Swipe mode moves the card into Passed (pass) or Smashed (smash/chosen),
// wherever it currently sits. Once Remaining is empty the session finishes
// unless at least two cards were kept, in which case it waits for a duel.
//
// Duel mode retires a passed card to Passed and leaves a kept card in
// Remaining for the next pairing; one survivor (or none) finishes the
// session. A duel decision on a card outside Remaining changes nothing.
//
// Repeating a decision is a successful no-op.
func Decide(st State, cardID string, d models.Decision) (State, error) {
	if st.Status == models.StatusFinished {
		return st, newError(CodeInvalidState, "session is already finished")
	}
	if !d.Valid() {
		return st, newError(CodeInvalidInput, "decision must be pass, smash, or chosen")
	}
	if cardID == "" {
		return st, newError(CodeInvalidInput, "card_id is required")
	}
	if !Contains(st.Partition, cardID) {
		return st, newError(CodeInvalidInput, "card %s is not part of this session", cardID)
	}

	next := st.clone()

	switch next.Mode {
	case models.ModeSwipe:
		next.Remaining = remove(next.Remaining, cardID)
		if d.Keeps() {
			next.Passed = remove(next.Passed, cardID)
			next.Smashed = appendUnique(next.Smashed, cardID)
		} else {
			next.Smashed = remove(next.Smashed, cardID)
			next.Passed = appendUnique(next.Passed, cardID)
		}
		if len(next.Remaining) == 0 && len(next.Smashed) < 2 {
			next.Status = models.StatusFinished
		}
	case models.ModeDuel:
		if !d.Keeps() && slices.Contains(next.Remaining, cardID) {
			next.Remaining = remove(next.Remaining, cardID)
			next.Passed = appendUnique(next.Passed, cardID)
		}
		if len(next.Remaining) <= 1 {
			next.Status = models.StatusFinished
		}
	default:
		return st, newError(CodeInvalidState, "unknown session mode %q", st.Mode)
	}

	return next, nil
}

// StartDuel turns the kept cards into the duel pool. Already in duel mode it
// only checks that a pairing is still possible.
func StartDuel(st State) (State, error) {
	if st.Mode == models.ModeDuel {
		if len(dedup(without(st.Remaining, st.Passed))) < 2 {
			return st, newError(CodeInsufficientCards, "not enough cards left for a duel")
		}
		return st.clone(), nil
	}
	if len(st.Smashed) < 2 {
		return st, newError(CodeInsufficientCards, "need at least 2 smashed cards for a duel")
	}

	next := st.clone()
	next.Remaining = next.Smashed
	next.Smashed = []string{}
	next.Mode = models.ModeDuel
	next.Status = models.StatusActive
	return next, nil
}

// ReturnToSwipe sends the duel survivors back through a swipe pass. Sessions
// already in swipe mode are returned unchanged, so a finished swipe session
// is not reactivated.
func ReturnToSwipe(st State) State {
	if st.Mode == models.ModeSwipe {
		return st.clone()
	}

	next := st.clone()
	next.Remaining = dedup(without(append(next.Remaining, next.Smashed...), next.Passed))
	next.Smashed = []string{}
	next.Mode = models.ModeSwipe
	next.Status = models.StatusActive
	return next
}

// Reswipe restarts swiping over the kept cards only.
func Reswipe(st State) (State, error) {
	if len(st.Smashed) == 0 {
		return st, newError(CodeInsufficientCards, "no smashed cards to reswipe")
	}

	next := st.clone()
	next.Remaining = next.Smashed
	next.Smashed = []string{}
	next.Mode = models.ModeSwipe
	next.Status = models.StatusActive
	return next, nil
}

// Restore pulls a passed card out of the trash and back into play.
func Restore(st State, cardID string) (State, error) {
	if st.Status == models.StatusFinished {
		return st, newError(CodeInvalidState, "cannot restore cards in a finished session")
	}
	if !slices.Contains(st.Passed, cardID) {
		return st, newError(CodeInvalidInput, "card %s is not in the passed pile", cardID)
	}

	next := st.clone()
	next.Passed = remove(next.Passed, cardID)
	next.Smashed = remove(next.Smashed, cardID)
	next.Remaining = appendUnique(next.Remaining, cardID)
	return next, nil
}

// Finish ends the session regardless of what is left to decide.
func Finish(st State) State {
	next := st.clone()
	next.Status = models.StatusFinished
	return next
}

// DuelCandidates lists the cards a duel pair may be drawn from.
func DuelCandidates(st State) ([]string, error) {
	pool := dedup(without(st.Remaining, st.Passed))
	if len(pool) < 2 {
		return nil, newError(CodeInsufficientCards, "not enough cards for duel")
	}
	return pool, nil
}
