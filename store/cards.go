// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/session"
)

const cardColumns = `id, deck_id, title, description, image_url, metadata, position, created_at, updated_at`

func scanCard(row scanner) (models.Card, error) {
	var c models.Card
	var metadata sql.NullString
	err := row.Scan(
		&c.ID, &c.DeckID, &c.Title, &c.Description, &c.ImageURL,
		&metadata, &c.Position, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return models.Card{}, err
	}
	c.Metadata = decodeMetadata(metadata.String)
	return c, nil
}

func scanCards(rows *sql.Rows) ([]models.Card, error) {
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// ListCards returns a deck's cards by position, then creation time.
func (s *Store) ListCards(ctx context.Context, deckID string) ([]models.Card, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM card
		WHERE deck_id = $1
		ORDER BY position ASC, created_at ASC
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	return scanCards(rows)
}

func (s *Store) LoadCard(ctx context.Context, id string) (models.Card, error) {
	c, err := scanCard(s.q.QueryRowContext(ctx, `
		SELECT `+cardColumns+` FROM card WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, session.NotFound("card", id)
	}
	if err != nil {
		return models.Card{}, fmt.Errorf("query card: %w", err)
	}
	return c, nil
}

func (s *Store) LoadCardIDsByDeck(ctx context.Context, deckID string) ([]string, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id FROM card
		WHERE deck_id = $1
		ORDER BY position ASC, created_at ASC
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("query card ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan card id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) LoadCardsByIDs(ctx context.Context, ids []string) ([]models.Card, error) {
	if len(ids) == 0 {
		return []models.Card{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM card
		WHERE id IN (`+placeholders(1, len(ids))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards by id: %w", err)
	}
	return scanCards(rows)
}

// NextCardPosition is one past the highest position used in the deck.
func (s *Store) NextCardPosition(ctx context.Context, deckID string) (int, error) {
	var next int
	err := s.q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), -1) + 1 FROM card WHERE deck_id = $1
	`, deckID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("query next position: %w", err)
	}
	return next, nil
}

func (s *Store) CreateCard(ctx context.Context, c models.Card) error {
	metadata, err := encodeMetadata(c.Metadata)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO card (`+cardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.DeckID, c.Title, c.Description, c.ImageURL, metadata, c.Position, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (s *Store) UpdateCard(ctx context.Context, c models.Card) error {
	metadata, err := encodeMetadata(c.Metadata)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE card
		SET title = $1, description = $2, image_url = $3, metadata = $4, position = $5, updated_at = $6
		WHERE id = $7
	`, c.Title, c.Description, c.ImageURL, metadata, c.Position, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return expectRow(res, "card", c.ID)
}

func (s *Store) DeleteCard(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM card WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return expectRow(res, "card", id)
}
