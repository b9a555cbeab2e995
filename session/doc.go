// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the swipe/duel voting session.

A session splits the cards of one deck into three disjoint, ordered
sequences:

  - Remaining: still to be decided (swipe) or still in contention (duel)
  - Smashed: kept during the current swipe pass
  - Passed: rejected; can be restored while the session is active

# Transitions

The transitions are pure functions over State, so they can be tested
without a database:

	next, err := session.Decide(st, cardID, models.DecisionSmash)

Decide, StartDuel, ReturnToSwipe, Reswipe, Restore and Finish never modify
their input. Failures are reported before anything changes.

# Service

Service persists transitions through a Store. Every mutating call runs one
load-transition-save cycle in a single transaction while holding a lock on
the session id, and the vote row is written in the same transaction:

	svc := session.NewService(st)
	view, err := svc.Decide(ctx, models.DecisionInput{
		SessionID: id,
		CardID:    cardID,
		Decision:  models.DecisionPass,
	})

Results come back as a SessionView with the remaining and passed cards
loaded and the winner set once the session finished with a single
candidate.

# Errors

Every failure is an *Error carrying a Code. Use errors.Is against the
sentinels (ErrNotFound, ErrInvalidState, ...) or CodeOf to map a failure
to a response.
*/
package session
