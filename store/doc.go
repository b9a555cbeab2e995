// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the SQL persistence for decks, cards, sessions and votes.

	st := store.New(conn, store.Postgres)

Queries use $N placeholders, which both lib/pq and modernc.org/sqlite
accept. Session partitions are stored as JSON arrays of card ids and card
metadata as a JSON object.

WithTx runs a function against a transaction-bound Store. On PostgreSQL,
session reads inside a transaction take a row lock (FOR UPDATE). SQLite runs
on one connection, so its transactions are already serialised.

Missing rows are reported as session.NotFound errors.
*/
package store
