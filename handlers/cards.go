// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pickme/cliparse"
	"github.com/danielhkuo/pickme/middleware"
	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/store"
)

type CardHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewCardHandler(s *store.Store, cfg cliparse.Config) *CardHandler {
	return &CardHandler{store: s, cfg: cfg}
}

// ListCards handles GET /api/v1/decks/{id}/cards
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	if _, err := h.store.LoadDeck(r.Context(), deckID); err != nil {
		writeError(w, r, "load deck", err)
		return
	}

	cards, err := h.store.ListCards(r.Context(), deckID)
	if err != nil {
		writeError(w, r, "list cards", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cards)
}

// GetCard handles GET /api/v1/cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.LoadCard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "load card", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, card)
}

// CreateCard handles POST /api/v1/cards
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	if req.DeckID == "" {
		badRequest(w, "deck_id is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(w, "title is required")
		return
	}

	var card models.Card
	err := h.store.WithTx(r.Context(), func(tx *store.Store) error {
		if _, err := tx.LoadDeck(r.Context(), req.DeckID); err != nil {
			return err
		}

		next, err := tx.NextCardPosition(r.Context(), req.DeckID)
		if err != nil {
			return err
		}

		card = newCard(req.DeckID, req, next, time.Now().UTC())
		return tx.CreateCard(r.Context(), card)
	})
	if err != nil {
		writeError(w, r, "create card", err)
		return
	}

	slog.Info("card created", "card_id", card.ID, "deck_id", card.DeckID)

	middleware.JSONResponse(w, http.StatusCreated, card)
}

// BulkCreateCards handles POST /api/v1/decks/{id}/cards/bulk.
// Entries without a title are skipped.
func (h *CardHandler) BulkCreateCards(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")

	var req models.BulkCreateCardsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if len(req.Cards) == 0 {
		badRequest(w, "cards must not be empty")
		return
	}

	var created []models.Card
	err := h.store.WithTx(r.Context(), func(tx *store.Store) error {
		var err error
		created, err = insertCards(r.Context(), tx, deckID, req.Cards)
		return err
	})
	if err != nil {
		writeError(w, r, "bulk create cards", err)
		return
	}

	slog.Info("cards created", "deck_id", deckID, "count", len(created), "skipped", len(req.Cards)-len(created))

	middleware.JSONResponse(w, http.StatusCreated, created)
}

func insertCards(ctx context.Context, tx *store.Store, deckID string, reqs []models.CreateCardRequest) ([]models.Card, error) {
	if _, err := tx.LoadDeck(ctx, deckID); err != nil {
		return nil, err
	}

	next, err := tx.NextCardPosition(ctx, deckID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := []models.Card{}
	for _, req := range reqs {
		if strings.TrimSpace(req.Title) == "" {
			continue
		}

		card := newCard(deckID, req, next, now)
		if err := tx.CreateCard(ctx, card); err != nil {
			return nil, err
		}
		if card.Position >= next {
			next = card.Position + 1
		}
		created = append(created, card)
	}
	return created, nil
}

func newCard(deckID string, req models.CreateCardRequest, defaultPosition int, now time.Time) models.Card {
	position := defaultPosition
	if req.Position != nil {
		position = *req.Position
	}
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return models.Card{
		ID:          uuid.NewString(),
		DeckID:      deckID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Metadata:    metadata,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateCard handles PUT /api/v1/cards/{id}
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	var card models.Card
	err := h.store.WithTx(r.Context(), func(tx *store.Store) error {
		var err error
		card, err = tx.LoadCard(r.Context(), r.PathValue("id"))
		if err != nil {
			return err
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return errTitleRequired
			}
			card.Title = title
		}
		if req.Description != nil {
			card.Description = req.Description
		}
		if req.ImageURL != nil {
			card.ImageURL = req.ImageURL
		}
		if req.Metadata != nil {
			card.Metadata = req.Metadata
		}
		if req.Position != nil {
			card.Position = *req.Position
		}
		card.UpdatedAt = time.Now().UTC()

		return tx.UpdateCard(r.Context(), card)
	})
	if err != nil {
		writeError(w, r, "update card", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/v1/cards/{id}. Sessions keep the id; it
// simply stops appearing in materialised views.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if err := h.store.DeleteCard(r.Context(), cardID); err != nil {
		writeError(w, r, "delete card", err)
		return
	}

	slog.Info("card deleted", "card_id", cardID)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Message: "Card deleted successfully"})
}
