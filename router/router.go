// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pickme/cliparse"
	"github.com/danielhkuo/pickme/handlers"
	"github.com/danielhkuo/pickme/middleware"
	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/session"
	"github.com/danielhkuo/pickme/store"
)

const healthTimeout = 2 * time.Second

func NewRouter(st *store.Store, svc *session.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	deckHandler := handlers.NewDeckHandler(st, cfg)
	cardHandler := handlers.NewCardHandler(st, cfg)
	sessionHandler := handlers.NewSessionHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			middleware.JSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "error", DB: "disconnected"})
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok", DB: "connected"})
	})

	// Decks
	mux.HandleFunc("GET /api/v1/decks", middleware.WithLogging(deckHandler.ListDecks))
	mux.HandleFunc("POST /api/v1/decks", middleware.WithLogging(deckHandler.CreateDeck))
	mux.HandleFunc("GET /api/v1/decks/{id}", middleware.WithLogging(deckHandler.GetDeck))
	mux.HandleFunc("PUT /api/v1/decks/{id}", middleware.WithLogging(deckHandler.UpdateDeck))
	mux.HandleFunc("DELETE /api/v1/decks/{id}", middleware.WithLogging(deckHandler.DeleteDeck))

	// Cards
	mux.HandleFunc("GET /api/v1/decks/{id}/cards", middleware.WithLogging(cardHandler.ListCards))
	mux.HandleFunc("POST /api/v1/decks/{id}/cards/bulk", middleware.WithLogging(cardHandler.BulkCreateCards))
	mux.HandleFunc("POST /api/v1/cards", middleware.WithLogging(cardHandler.CreateCard))
	mux.HandleFunc("GET /api/v1/cards/{id}", middleware.WithLogging(cardHandler.GetCard))
	mux.HandleFunc("PUT /api/v1/cards/{id}", middleware.WithLogging(cardHandler.UpdateCard))
	mux.HandleFunc("DELETE /api/v1/cards/{id}", middleware.WithLogging(cardHandler.DeleteCard))

	// Sessions
	mux.HandleFunc("POST /api/v1/decks/{id}/sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /api/v1/sessions/{id}/state", middleware.WithLogging(sessionHandler.GetState))
	mux.HandleFunc("POST /api/v1/sessions/{id}/decision", middleware.WithLogging(sessionHandler.RecordDecision))
	mux.HandleFunc("POST /api/v1/sessions/{id}/duel", middleware.WithLogging(sessionHandler.DuelPair))
	mux.HandleFunc("POST /api/v1/sessions/{id}/start-duel", middleware.WithLogging(sessionHandler.StartDuel))
	mux.HandleFunc("POST /api/v1/sessions/{id}/return-to-swipe", middleware.WithLogging(sessionHandler.ReturnToSwipe))
	mux.HandleFunc("POST /api/v1/sessions/{id}/reswipe", middleware.WithLogging(sessionHandler.Reswipe))
	mux.HandleFunc("POST /api/v1/sessions/{id}/restore", middleware.WithLogging(sessionHandler.Restore))
	mux.HandleFunc("POST /api/v1/sessions/{id}/finish", middleware.WithLogging(sessionHandler.Finish))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pickme API v1"))
	})

	return mux
}
