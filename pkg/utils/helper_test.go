package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	for raw, want := range map[string]int64{"7": 7, "0": 0, "-1": -1} {
		id, err := ParseID(raw, "movie_id")
		require.NoError(t, err, raw)
		assert.Equal(t, want, id)
	}

	for _, raw := range []string{"abc", "1.5", ""} {
		_, err := ParseID(raw, "movie_id")
		assert.ErrorIs(t, err, ErrValidation, raw)
	}
}
