// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the PickMe API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, svc, cfg)

# Endpoints

Health and root:

	GET /health   - {"status":"ok","db":"connected"}, 503 when the database is unreachable
	GET /         - API banner

Decks (id or slug for GET):

	GET    /api/v1/decks?owner_id=
	POST   /api/v1/decks
	GET    /api/v1/decks/{id}
	PUT    /api/v1/decks/{id}
	DELETE /api/v1/decks/{id}

Cards:

	GET    /api/v1/decks/{id}/cards
	POST   /api/v1/decks/{id}/cards/bulk
	POST   /api/v1/cards
	GET    /api/v1/cards/{id}
	PUT    /api/v1/cards/{id}
	DELETE /api/v1/cards/{id}

Sessions:

	POST /api/v1/decks/{id}/sessions
	GET  /api/v1/sessions/{id}/state
	POST /api/v1/sessions/{id}/decision
	POST /api/v1/sessions/{id}/duel
	POST /api/v1/sessions/{id}/start-duel
	POST /api/v1/sessions/{id}/return-to-swipe
	POST /api/v1/sessions/{id}/reswipe
	POST /api/v1/sessions/{id}/restore
	POST /api/v1/sessions/{id}/finish

All API routes are wrapped in request logging. main wraps the whole mux in
CORS.
*/
package router
