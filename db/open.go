// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pickme/store"
)

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, store.Dialect, error) {
	switch store.Dialect(dbType) {
	case store.Postgres:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, "", fmt.Errorf("ping postgres: %w", err)
		}
		return conn, store.Postgres, nil

	case store.SQLite:
		conn, err := sql.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
		// One connection: in-memory databases are per connection, and a
		// single writer serialises transactions.
		conn.SetMaxOpenConns(1)
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, "", fmt.Errorf("ping sqlite: %w", err)
		}
		return conn, store.SQLite, nil
	}

	return nil, "", fmt.Errorf("unsupported database type %q", dbType)
}

// sqliteDSN turns on foreign keys (needed for ON DELETE CASCADE) and a busy
// timeout unless the caller already set pragmas.
func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
