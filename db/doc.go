// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Opening

	conn, dialect, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq. "sqlite" uses modernc.org/sqlite with a single
connection, foreign keys on and a busy timeout.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times. The same DDL runs on both backends.

# Tables

  - deck: a named collection of cards, addressable by id or slug
  - card: an item in a deck with display position and JSON metadata
  - deck_session: partition arrays, mode and status of one voting run
  - vote: append-only log of decisions

# Relationships

	deck 1──* card
	deck 1──* deck_session
	deck_session 1──* vote

All foreign keys use ON DELETE CASCADE. At most one active session per
deck is enforced by a partial unique index.
*/
package db
