// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickme/middleware"
	"github.com/danielhkuo/pickme/session"
)

// statusFor maps a failure code to the HTTP status it is reported with.
func statusFor(code session.Code) int {
	switch code {
	case session.CodeNotFound:
		return http.StatusNotFound
	case session.CodeEmptyDeck, session.CodeInvalidInput, session.CodeInsufficientCards:
		return http.StatusBadRequest
	case session.CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Store failures are logged and the
// cause is kept out of the response body.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := session.CodeOf(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", w.Header().Get(middleware.RequestIDHeader),
		)
		middleware.CodedErrorResponse(w, status, string(code), "Internal server error")
		return
	}

	message := err.Error()
	var typed *session.Error
	if errors.As(err, &typed) {
		message = typed.Message
	}
	middleware.CodedErrorResponse(w, status, string(code), message)
}

func badRequest(w http.ResponseWriter, message string) {
	middleware.CodedErrorResponse(w, http.StatusBadRequest, string(session.CodeInvalidInput), message)
}

var errTitleRequired = &session.Error{Code: session.CodeInvalidInput, Message: "title is required"}
