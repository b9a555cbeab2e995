// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Every request gets an X-Request-ID (the incoming one is kept). Start and
completion are logged with method, path, status and duration_ms.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
	}

A "*" entry allows any origin. Preflight requests answer 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.CodedErrorResponse(w, http.StatusConflict, "invalid_state", "session is finished")

ParseJSONBody treats an empty body as "no fields set", so optional
request bodies need no special casing.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for the salted vote fingerprint.
*/
package middleware
