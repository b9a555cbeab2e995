// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateDeckRequest: title, description, owner_id
  - UpdateDeckRequest: title, description (partial)
  - CreateCardRequest: deck_id, title, description, image_url, metadata, position
  - BulkCreateCardsRequest: cards
  - UpdateCardRequest: partial card fields
  - CreateSessionRequest: owner_id, mode
  - DecisionRequest: card_id, decision, round
  - RestoreRequest: card_id

# Response Types

  - SessionView: session plus remainingCards, passedCards and winner
  - DuelPair: card1, card2
  - HealthResponse: status, db
  - DeleteResponse: message
  - ErrorResponse: error, code, message

# Domain Types

  - Deck: user-curated collection of cards, addressable by id or slug
  - Card: title, description, image_url, metadata, position within its deck
  - Partition: remaining / smashed / passed card id sequences
  - Session: a partition plus mode and status
  - Vote: audit record of a single decision

# Constants

Session modes and statuses:

	ModeSwipe = "swipe"
	ModeDuel  = "duel"

	StatusActive   = "active"
	StatusFinished = "finished"

Decisions (smash and chosen both keep the card):

	DecisionPass   = "pass"
	DecisionSmash  = "smash"
	DecisionChosen = "chosen"
*/
package models
