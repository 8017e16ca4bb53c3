package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrMissingFields, ErrValidation)
	assert.ErrorIs(t, ErrInvalidEmail, ErrValidation)
	assert.NotErrorIs(t, ErrMissingFields, ErrInvalidEmail)
}

func TestDuplicateIsPersistence(t *testing.T) {
	wrapped := fmt.Errorf("insert contact: %w", ErrDuplicateSubmission)
	assert.ErrorIs(t, wrapped, ErrPersistence)
	assert.ErrorIs(t, wrapped, ErrDuplicateSubmission)
	assert.NotErrorIs(t, ErrPersistence, ErrDuplicateSubmission)
}

func TestEmailDispatchError(t *testing.T) {
	e := &EmailDispatchError{}
	assert.True(t, e.Empty())

	e.Add(RecipientOwner, context.DeadlineExceeded)
	assert.False(t, e.Empty())
	assert.True(t, e.Has(RecipientOwner))
	assert.False(t, e.Has(RecipientSubmitter))

	var err error = e
	assert.ErrorIs(t, err, ErrEmailDispatch)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "owner")

	var target *EmailDispatchError
	assert.True(t, errors.As(fmt.Errorf("submit: %w", err), &target))
	assert.Equal(t, []Recipient{RecipientOwner}, target.Failed)
}
