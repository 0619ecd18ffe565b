package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	v := Validation("name is required")
	assert.ErrorIs(t, v, ErrValidation)
	assert.NotErrorIs(t, v, ErrNotFound)

	nf := NotFound("game %d not found", 7)
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, "not found: game 7 not found", nf.Error())
}

func TestStoreWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Store(cause, "failed to insert game")

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to insert game", Message(err, "fallback"))
}

func TestStoreKeepsClassifiedErrors(t *testing.T) {
	nf := NotFound("game 1 not found")
	assert.Same(t, nf, Store(nf, "ignored"))
	assert.NoError(t, Store(nil, "ignored"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("raw"), "fallback"))
}
