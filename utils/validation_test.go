package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Question string `validate:"required,min=3,max=2000"`
	Limit    int    `validate:"gte=1,lte=200"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		err := ValidateStruct(testPayload{Question: "what is the oldest ship", Limit: 50})
		assert.NoError(t, err)
	})

	t.Run("missing required field fails", func(t *testing.T) {
		err := ValidateStruct(testPayload{Limit: 50})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields["Question"], "required")
	})

	t.Run("out of range field fails", func(t *testing.T) {
		err := ValidateStruct(testPayload{Question: "abc", Limit: 500})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields["Limit"], "at most")
	})
}

func TestValidationDetails(t *testing.T) {
	err := ValidateStruct(testPayload{Limit: 0})
	require.Error(t, err)

	details := ValidationDetails(err)
	assert.Contains(t, details, "Question")
	assert.Contains(t, details, "Limit")

	assert.Nil(t, ValidationDetails(errors.New("plain error")))
}
