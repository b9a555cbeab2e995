// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pickme/audit"
	"github.com/danielhkuo/pickme/cliparse"
	"github.com/danielhkuo/pickme/middleware"
	"github.com/danielhkuo/pickme/models"
	"github.com/danielhkuo/pickme/session"
)

type SessionHandler struct {
	svc *session.Service
	cfg cliparse.Config
}

func NewSessionHandler(svc *session.Service, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{svc: svc, cfg: cfg}
}

// CreateSession handles POST /api/v1/decks/{id}/sessions.
// Responds 201 for a new session and 200 when the active one was extended.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")

	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	view, created, err := h.svc.Create(r.Context(), deckID, req.OwnerID, req.Mode)
	if err != nil {
		writeError(w, r, "create session", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		slog.Info("session created", "session_id", view.ID, "deck_id", deckID, "mode", view.Mode)
	}

	middleware.JSONResponse(w, status, view)
}

// GetState handles GET /api/v1/sessions/{id}/state
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.State(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "load session", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// RecordDecision handles POST /api/v1/sessions/{id}/decision
func (h *SessionHandler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	var req models.DecisionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	fp := audit.NewFingerprint(middleware.GetClientIP(r), r.UserAgent(), h.cfg.VoteHashSalt)

	view, err := h.svc.Decide(r.Context(), models.DecisionInput{
		SessionID: r.PathValue("id"),
		CardID:    req.CardID,
		Decision:  req.Decision,
		Round:     req.Round,
		IPHash:    fp.IPHash,
		UserAgent: fp.UserAgent,
	})
	if err != nil {
		writeError(w, r, "record decision", err)
		return
	}

	if view.Status == models.StatusFinished {
		logFinished(view)
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// DuelPair handles POST /api/v1/sessions/{id}/duel
func (h *SessionHandler) DuelPair(w http.ResponseWriter, r *http.Request) {
	pair, err := h.svc.DuelPair(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "pick duel pair", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pair)
}

// StartDuel handles POST /api/v1/sessions/{id}/start-duel
func (h *SessionHandler) StartDuel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start duel", h.svc.StartDuel)
}

// ReturnToSwipe handles POST /api/v1/sessions/{id}/return-to-swipe
func (h *SessionHandler) ReturnToSwipe(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "return to swipe", h.svc.ReturnToSwipe)
}

// Reswipe handles POST /api/v1/sessions/{id}/reswipe
func (h *SessionHandler) Reswipe(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reswipe", h.svc.Reswipe)
}

// Finish handles POST /api/v1/sessions/{id}/finish
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "finish session", h.svc.Finish)
}

// Restore handles POST /api/v1/sessions/{id}/restore
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req models.RestoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.CardID == "" {
		badRequest(w, "card_id is required")
		return
	}

	view, err := h.svc.Restore(r.Context(), r.PathValue("id"), req.CardID)
	if err != nil {
		writeError(w, r, "restore card", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

func (h *SessionHandler) transition(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, string) (models.SessionView, error)) {
	sessionID := r.PathValue("id")

	view, err := fn(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	slog.Info(op, "session_id", sessionID, "mode", view.Mode, "status", view.Status)
	if view.Status == models.StatusFinished {
		logFinished(view)
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

func logFinished(view models.SessionView) {
	winner := ""
	if view.Winner != nil {
		winner = view.Winner.ID
	}
	slog.Info("session finished",
		"session_id", view.ID,
		"winner", winner,
		"took", strings.TrimSpace(humanize.RelTime(view.CreatedAt, view.UpdatedAt, "", "")),
	)
}
