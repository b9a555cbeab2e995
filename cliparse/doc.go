// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: connection string or SQLite file (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AllowedOrigins: CORS origins (default: *)
  - VoteHashSalt: Secret for vote IP hashing (optional)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-origins    Comma-separated CORS origins
	-vote-salt  Vote IP hash salt

# Environment Variables

Values are read from the environment first (main loads a .env file when
present), then flags override them:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ALLOWED_ORIGINS → -origins
	VOTE_HASH_SALT  → -vote-salt

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - the port is outside 1-65535 or not a number
  - the database type is neither sqlite nor postgres
*/
package cliparse
