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

const sessionColumns = `id, deck_id, owner_id, remaining_cards, smashed_cards, passed_cards, mode, status, created_at, updated_at`

func scanSession(row scanner) (models.Session, error) {
	var sess models.Session
	var remaining, smashed, passed string
	err := row.Scan(
		&sess.ID, &sess.DeckID, &sess.OwnerID,
		&remaining, &smashed, &passed,
		&sess.Mode, &sess.Status, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return models.Session{}, err
	}

	if sess.Remaining, err = decodeIDs(remaining); err != nil {
		return models.Session{}, err
	}
	if sess.Smashed, err = decodeIDs(smashed); err != nil {
		return models.Session{}, err
	}
	if sess.Passed, err = decodeIDs(passed); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func encodePartition(p models.Partition) (remaining, smashed, passed string, err error) {
	if remaining, err = encodeIDs(p.Remaining); err != nil {
		return
	}
	if smashed, err = encodeIDs(p.Smashed); err != nil {
		return
	}
	passed, err = encodeIDs(p.Passed)
	return
}

func (s *Store) LoadSession(ctx context.Context, id string) (models.Session, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM deck_session
		WHERE id = $1`+s.forUpdate(), id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, session.NotFound("session", id)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("query session: %w", err)
	}
	return sess, nil
}

func (s *Store) FindActiveSessionForDeck(ctx context.Context, deckID string) (*models.Session, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM deck_session
		WHERE deck_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1`+s.forUpdate(), deckID, string(models.StatusActive))

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active session: %w", err)
	}
	return &sess, nil
}

func (s *Store) CreateSession(ctx context.Context, sess models.Session) error {
	remaining, smashed, passed, err := encodePartition(sess.Partition)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO deck_session (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sess.ID, sess.DeckID, sess.OwnerID, remaining, smashed, passed,
		string(sess.Mode), string(sess.Status), sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// SaveSession writes the whole partition, mode and status in one statement.
func (s *Store) SaveSession(ctx context.Context, sess models.Session) error {
	remaining, smashed, passed, err := encodePartition(sess.Partition)
	if err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE deck_session
		SET remaining_cards = $1, smashed_cards = $2, passed_cards = $3,
		    mode = $4, status = $5, updated_at = $6
		WHERE id = $7
	`, remaining, smashed, passed, string(sess.Mode), string(sess.Status), sess.UpdatedAt, sess.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return session.NotFound("session", sess.ID)
	}
	return nil
}

func (s *Store) AppendVote(ctx context.Context, v models.Vote) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO vote (id, session_id, card_id, decision, round, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, v.ID, v.SessionID, v.CardID, string(v.Decision), v.Round, v.IPHash, v.UserAgent, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}
