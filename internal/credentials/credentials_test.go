package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pass1234")
	assert.NoError(t, err)
	assert.NotContains(t, hash, "pass1234")
	assert.True(t, Verify("pass1234", hash))
	assert.False(t, Verify("wrongpass", hash))
}

func TestHashSaltedPerCall(t *testing.T) {
	h1, err := Hash("pass1234")
	assert.NoError(t, err)
	h2, err := Hash("pass1234")
	assert.NoError(t, err)

	// Same password, different salt, different digest - both verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("pass1234", h1))
	assert.True(t, Verify("pass1234", h2))
}

func TestHashRejectsShortPassword(t *testing.T) {
	_, err := Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = Hash("1234567")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestVerifyMalformedDigest(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"too many parts", "a$b$c"},
		{"bad salt encoding", "!!!$" + strings.Repeat("A", 44)},
		{"bad hash encoding", strings.Repeat("A", 24) + "$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify("pass1234", tt.encoded))
		})
	}
}
