package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Username string `json:"username" validate:"required,min=3,max=50,nospace"`
}

func TestUsernameCharacters(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"john_doe", true},
		{"j.doe", true},
		{"jane-doe99", true},
		{"zoë", true},
		{"john doe", false},
		{"john\tdoe", false},
		{"john\x00doe", false},
		{"jd", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			errs := ValidateStruct(signupForm{Username: tt.username})
			if tt.valid {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, "username")
		})
	}

	errs := ValidateStruct(signupForm{Username: "john doe"})
	require.Contains(t, errs, "username")
	assert.Equal(t, "Must not contain whitespace or control characters", errs["username"])
}
