// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Mode is the phase a session is in.
type Mode string

// Session mode constants
const (
	ModeSwipe Mode = "swipe"
	ModeDuel  Mode = "duel"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSwipe || m == ModeDuel
}

// Status is the lifecycle state of a session.
type Status string

// Session status constants
const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Decision is a single swipe or duel verdict on a card.
type Decision string

// Decision constants. Smash and chosen both mean "keep".
const (
	DecisionPass   Decision = "pass"
	DecisionSmash  Decision = "smash"
	DecisionChosen Decision = "chosen"
)

// Valid reports whether d is a recognised decision.
func (d Decision) Valid() bool {
	switch d {
	case DecisionPass, DecisionSmash, DecisionChosen:
		return true
	}
	return false
}

// Keeps reports whether d keeps the card (smash or chosen).
func (d Decision) Keeps() bool {
	return d == DecisionSmash || d == DecisionChosen
}

// Domain types

type Deck struct {
	ID          string    `json:"id"`
	OwnerID     *string   `json:"owner_id,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Card struct {
	ID          string         `json:"id"`
	DeckID      string         `json:"deck_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Metadata    map[string]any `json:"metadata"`
	Position    int            `json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Partition holds the three disjoint, insertion-ordered card id sequences of
// a session.
type Partition struct {
	Remaining []string `json:"remaining_cards"`
	Smashed   []string `json:"smashed_cards"`
	Passed    []string `json:"passed_cards"`
}

type Session struct {
	ID        string  `json:"id"`
	DeckID    string  `json:"deck_id"`
	OwnerID   *string `json:"owner_id,omitempty"`
	Partition
	Mode      Mode      `json:"mode"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vote is an append-only audit record. IPHash and UserAgent are never exposed.
type Vote struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	CardID    string    `json:"card_id"`
	Decision  Decision  `json:"decision"`
	Round     int       `json:"round"`
	IPHash    *string   `json:"-"`
	UserAgent *string   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// DecisionInput is everything needed to apply one decision to a session.
type DecisionInput struct {
	SessionID string
	CardID    string
	Decision  Decision
	Round     int
	IPHash    *string
	UserAgent *string
}

// SessionView is a session with its partitions materialised as cards.
type SessionView struct {
	Session
	RemainingCards []Card `json:"remainingCards"`
	PassedCards    []Card `json:"passedCards"`
	Winner         *Card  `json:"winner,omitempty"`
}

type DuelPair struct {
	Card1 Card `json:"card1"`
	Card2 Card `json:"card2"`
}

// Request types

type CreateDeckRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	OwnerID     *string `json:"owner_id"`
}

type UpdateDeckRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type CreateCardRequest struct {
	DeckID      string         `json:"deck_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	ImageURL    *string        `json:"image_url"`
	Metadata    map[string]any `json:"metadata"`
	Position    *int           `json:"position"`
}

type BulkCreateCardsRequest struct {
	Cards []CreateCardRequest `json:"cards"`
}

type UpdateCardRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	ImageURL    *string        `json:"image_url"`
	Metadata    map[string]any `json:"metadata"`
	Position    *int           `json:"position"`
}

type CreateSessionRequest struct {
	OwnerID *string `json:"owner_id"`
	Mode    Mode    `json:"mode"`
}

type DecisionRequest struct {
	CardID   string   `json:"card_id"`
	Decision Decision `json:"decision"`
	Round    int      `json:"round"`
}

type RestoreRequest struct {
	CardID string `json:"card_id"`
}

// Response types

type DeleteResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
