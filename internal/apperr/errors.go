// Package apperr defines the error taxonomy shared by the workflow and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")

	ErrValidation    = errors.New("validation failed")
	ErrMissingFields = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrInvalidEmail  = fmt.Errorf("%w: invalid email address", ErrValidation)

	ErrPersistence         = errors.New("persistence failed")
	ErrDuplicateSubmission = fmt.Errorf("%w: duplicate submission", ErrPersistence)

	ErrEmailDispatch = errors.New("email dispatch failed")
)

// Recipient identifies which of the two workflow emails a failure belongs to.
type Recipient string

const (
	RecipientOwner     Recipient = "owner"
	RecipientSubmitter Recipient = "submitter"
)

// EmailDispatchError reports the sends that failed during one submission.
// It matches ErrEmailDispatch and every underlying transport error.
type EmailDispatchError struct {
	Failed []Recipient
	Causes []error
}

// Add records a failed send.
func (e *EmailDispatchError) Add(r Recipient, err error) {
	e.Failed = append(e.Failed, r)
	e.Causes = append(e.Causes, err)
}

// Empty reports whether no send failed.
func (e *EmailDispatchError) Empty() bool {
	return len(e.Failed) == 0
}

// Has reports whether the send to r failed.
func (e *EmailDispatchError) Has(r Recipient) bool {
	for _, f := range e.Failed {
		if f == r {
			return true
		}
	}
	return false
}

func (e *EmailDispatchError) Error() string {
	parts := make([]string, len(e.Failed))
	for i, r := range e.Failed {
		parts[i] = fmt.Sprintf("%s: %v", r, e.Causes[i])
	}
	return fmt.Sprintf("%s (%s)", ErrEmailDispatch, strings.Join(parts, "; "))
}

func (e *EmailDispatchError) Unwrap() []error {
	return append([]error{ErrEmailDispatch}, e.Causes...)
}
