package apisheet

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputError(t *testing.T) {
	err := fmt.Errorf("generate: %w", &InputError{Source: "api.yaml", Diagnostics: []string{"a", "b"}})

	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.NotErrorIs(t, err, ErrSinkFailure)
	assert.Contains(t, err.Error(), "malformed input api.yaml: a; b")

	var in *InputError
	assert.True(t, errors.As(err, &in))
	assert.Equal(t, []string{"a", "b"}, in.Diagnostics)
}

func TestOutputError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewOutputError("getPet", "compose", cause)

	assert.ErrorIs(t, err, ErrSinkFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `output error in sheet "getPet" (compose): disk full`, err.Error())
	assert.Equal(t, "output error (save): disk full", NewOutputError("", "save", cause).Error())
}
