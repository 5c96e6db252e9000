// Package pages holds the per-screen controllers. Each page composes the API
// client with the stores it needs and keeps its own in-memory view state;
// nothing here survives past the page visit.
package pages

import (
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// Notifier is how pages surface outcomes to the user.
type Notifier interface {
	Success(message string) int64
	Error(message string) int64
	Info(message string) int64
}

type nopNotifier struct{}

func (nopNotifier) Success(string) int64 { return 0 }
func (nopNotifier) Error(string) int64   { return 0 }
func (nopNotifier) Info(string) int64    { return 0 }

// errMessage prefers the server-supplied message and falls back to the
// given action phrase.
func errMessage(err error, fallback string) string {
	e := apperrors.FromError(err)
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
