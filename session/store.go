// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"

	"github.com/danielhkuo/pickme/models"
)

// Store is the persistence the session service depends on. Lookups of a
// missing session or deck must return an error matching ErrNotFound.
type Store interface {
	LoadSession(ctx context.Context, id string) (models.Session, error)
	CreateSession(ctx context.Context, s models.Session) error
	SaveSession(ctx context.Context, s models.Session) error
	// FindActiveSessionForDeck returns nil when the deck has no active session.
	FindActiveSessionForDeck(ctx context.Context, deckID string) (*models.Session, error)

	LoadDeck(ctx context.Context, id string) (models.Deck, error)
	// LoadCardIDsByDeck orders by position, then creation time.
	LoadCardIDsByDeck(ctx context.Context, deckID string) ([]string, error)
	// LoadCardsByIDs silently omits ids that do not exist.
	LoadCardsByIDs(ctx context.Context, ids []string) ([]models.Card, error)

	AppendVote(ctx context.Context, v models.Vote) error

	// InTx runs fn against a Store bound to a single transaction. Session
	// reads inside fn lock the row until the transaction ends. Any error
	// returned by fn rolls everything back.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
