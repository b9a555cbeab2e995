// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the PickMe API.

# Handler Types

  - DeckHandler: deck CRUD, lookup by id or slug
  - CardHandler: card CRUD and bulk import
  - SessionHandler: the swipe/duel session lifecycle

Deck and card handlers work on *store.Store directly. Session handlers go
through *session.Service, which owns every partition change:

	sessionHandler := handlers.NewSessionHandler(svc, cfg)

# Session Flow

	POST /api/v1/decks/{id}/sessions        → CreateSession (201 new, 200 extended)
	POST /api/v1/sessions/{id}/decision     → RecordDecision
	POST /api/v1/sessions/{id}/start-duel   → StartDuel
	POST /api/v1/sessions/{id}/duel         → DuelPair
	POST /api/v1/sessions/{id}/reswipe      → Reswipe
	POST /api/v1/sessions/{id}/finish       → Finish

Every session endpoint answers with the full session view: partitions,
materialised remaining and passed cards, and the winner once there is one.

# Errors

Failures carry a machine-readable code next to the HTTP status:

	not_found           404
	empty_deck          400
	invalid_input       400
	insufficient_cards  400
	invalid_state       409
	store_error         500

Votes record a salted hash of the client IP when VOTE_HASH_SALT is set.
*/
package handlers
