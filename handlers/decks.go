// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/danielhkuo/pickme/cliparse"
	"github.com/danielhkuo/pickme/middleware"
	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/store"
)

type DeckHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewDeckHandler(s *store.Store, cfg cliparse.Config) *DeckHandler {
	return &DeckHandler{store: s, cfg: cfg}
}

// deckSlug builds a readable, collision-resistant slug for a new deck.
func deckSlug(title, id string) string {
	suffix := strings.ReplaceAll(id, "-", "")[:8]
	base := slug.Make(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// ListDecks handles GET /api/v1/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	var ownerID *string
	if owner := r.URL.Query().Get("owner_id"); owner != "" {
		ownerID = &owner
	}

	decks, err := h.store.ListDecks(r.Context(), ownerID)
	if err != nil {
		writeError(w, r, "list decks", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, decks)
}

// GetDeck handles GET /api/v1/decks/{id}, where id may also be the slug
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.store.LoadDeckByRef(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "load deck", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, deck)
}

// CreateDeck handles POST /api/v1/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeckRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		badRequest(w, "title is required")
		return
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	deck := models.Deck{
		ID:          id,
		OwnerID:     req.OwnerID,
		Title:       title,
		Slug:        deckSlug(title, id),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateDeck(r.Context(), deck); err != nil {
		writeError(w, r, "create deck", err)
		return
	}

	slog.Info("deck created", "deck_id", deck.ID, "slug", deck.Slug)

	middleware.JSONResponse(w, http.StatusCreated, deck)
}

// UpdateDeck handles PUT /api/v1/decks/{id}. The slug never changes so
// shared links keep working.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDeckRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	var deck models.Deck
	err := h.store.WithTx(r.Context(), func(tx *store.Store) error {
		var err error
		deck, err = tx.LoadDeck(r.Context(), r.PathValue("id"))
		if err != nil {
			return err
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return errTitleRequired
			}
			deck.Title = title
		}
		if req.Description != nil {
			deck.Description = req.Description
		}
		deck.UpdatedAt = time.Now().UTC()

		return tx.UpdateDeck(r.Context(), deck)
	})
	if err != nil {
		writeError(w, r, "update deck", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /api/v1/decks/{id}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	if err := h.store.DeleteDeck(r.Context(), deckID); err != nil {
		writeError(w, r, "delete deck", err)
		return
	}

	slog.Info("deck deleted", "deck_id", deckID)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Message: "Deck deleted successfully"})
}
