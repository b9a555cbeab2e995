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

const deckColumns = `id, owner_id, title, slug, description, created_at, updated_at`

func scanDeck(row scanner) (models.Deck, error) {
	var d models.Deck
	err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Slug, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// ListDecks returns decks newest first, optionally limited to one owner.
func (s *Store) ListDecks(ctx context.Context, ownerID *string) ([]models.Deck, error) {
	var rows *sql.Rows
	var err error
	if ownerID != nil {
		rows, err = s.q.QueryContext(ctx, `
			SELECT `+deckColumns+` FROM deck
			WHERE owner_id = $1
			ORDER BY created_at DESC
		`, *ownerID)
	} else {
		rows, err = s.q.QueryContext(ctx, `
			SELECT `+deckColumns+` FROM deck
			ORDER BY created_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (s *Store) LoadDeck(ctx context.Context, id string) (models.Deck, error) {
	d, err := scanDeck(s.q.QueryRowContext(ctx, `
		SELECT `+deckColumns+` FROM deck WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Deck{}, session.NotFound("deck", id)
	}
	if err != nil {
		return models.Deck{}, fmt.Errorf("query deck: %w", err)
	}
	return d, nil
}

// LoadDeckByRef resolves a deck by id or slug.
func (s *Store) LoadDeckByRef(ctx context.Context, ref string) (models.Deck, error) {
	d, err := scanDeck(s.q.QueryRowContext(ctx, `
		SELECT `+deckColumns+` FROM deck WHERE id = $1 OR slug = $1
	`, ref))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Deck{}, session.NotFound("deck", ref)
	}
	if err != nil {
		return models.Deck{}, fmt.Errorf("query deck: %w", err)
	}
	return d, nil
}

func (s *Store) CreateDeck(ctx context.Context, d models.Deck) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO deck (`+deckColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.ID, d.OwnerID, d.Title, d.Slug, d.Description, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}
	return nil
}

func (s *Store) UpdateDeck(ctx context.Context, d models.Deck) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE deck
		SET title = $1, slug = $2, description = $3, updated_at = $4
		WHERE id = $5
	`, d.Title, d.Slug, d.Description, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("update deck: %w", err)
	}
	return expectRow(res, "deck", d.ID)
}

// DeleteDeck removes the deck; its cards, sessions and votes cascade.
func (s *Store) DeleteDeck(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM deck WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	return expectRow(res, "deck", id)
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return session.NotFound(kind, id)
	}
	return nil
}
