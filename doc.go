// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the PickMe API server.

PickMe helps a person choose one item from a deck of cards. A session
starts in swipe mode (keep or pass each card), narrows the kept cards in
head-to-head duels, and ends when a single card is left.

# Starting the Server

	DATABASE_URL=pickme.db go run .

Or with flags:

	go run . -p 3001 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ALLOWED_ORIGINS (-origins): comma-separated CORS origins (default: *)
  - VOTE_HASH_SALT (-vote-salt): enables the salted IP hash on votes

# Architecture

  - session: the partition state machine and the service that persists it
  - store: SQL persistence for decks, cards, sessions and votes
  - handlers: HTTP request handlers (decks, cards, sessions)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain, request and response types
  - audit: vote fingerprinting
  - db: connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
