// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Decks
CREATE TABLE IF NOT EXISTS deck (
    id TEXT PRIMARY KEY,
    owner_id TEXT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    description TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deck_owner_id ON deck(owner_id);

-- Cards
CREATE TABLE IF NOT EXISTS card (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL REFERENCES deck(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT,
    image_url TEXT,
    metadata TEXT NOT NULL DEFAULT '{}',
    position INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_card_deck_order ON card(deck_id, position, created_at);

-- Sessions (partitions are JSON arrays of card ids)
CREATE TABLE IF NOT EXISTS deck_session (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL REFERENCES deck(id) ON DELETE CASCADE,
    owner_id TEXT,
    remaining_cards TEXT NOT NULL DEFAULT '[]',
    smashed_cards TEXT NOT NULL DEFAULT '[]',
    passed_cards TEXT NOT NULL DEFAULT '[]',
    mode TEXT NOT NULL DEFAULT 'swipe' CHECK (mode IN ('swipe', 'duel')),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'finished')),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deck_session_deck_id ON deck_session(deck_id);

-- At most one active session per deck
CREATE UNIQUE INDEX IF NOT EXISTS idx_deck_session_active ON deck_session(deck_id) WHERE status = 'active';

-- Votes (audit trail, append-only)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES deck_session(id) ON DELETE CASCADE,
    card_id TEXT NOT NULL,
    decision TEXT NOT NULL CHECK (decision IN ('pass', 'smash', 'chosen')),
    round INTEGER NOT NULL DEFAULT 1,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_session_id ON vote(session_id);
`
