// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
)

// Code classifies a session failure.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeEmptyDeck         Code = "empty_deck"
	CodeInvalidInput      Code = "invalid_input"
	CodeInvalidState      Code = "invalid_state"
	CodeInsufficientCards Code = "insufficient_cards"
	CodeStoreError        Code = "store_error"
)

// Error is the typed failure returned by every session operation.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrEmptyDeck         = &Error{Code: CodeEmptyDeck, Message: "deck has no cards"}
	ErrInvalidInput      = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrInvalidState      = &Error{Code: CodeInvalidState, Message: "invalid state"}
	ErrInsufficientCards = &Error{Code: CodeInsufficientCards, Message: "insufficient cards"}
	ErrStore             = &Error{Code: CodeStoreError, Message: "store error"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity of the given kind.
func NotFound(kind, id string) *Error {
	return newError(CodeNotFound, "%s %s not found", kind, id)
}

// storeFailure wraps a persistence error. Errors that already carry a code
// (e.g. a store reporting NotFound) pass through unchanged.
func storeFailure(op string, err error) error {
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Code: CodeStoreError, Message: op, Cause: err}
}

// CodeOf extracts the failure code from err, defaulting to store_error for
// untyped errors.
func CodeOf(err error) Code {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return CodeStoreError
}
