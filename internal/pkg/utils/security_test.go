package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	t.Run("Is deterministic for the same credentials", func(t *testing.T) {
		assert.Equal(t, HashPassword("drhouse", "vicodin"), HashPassword("drhouse", "vicodin"))
	})

	t.Run("Salts per username", func(t *testing.T) {
		assert.NotEqual(t, HashPassword("drhouse", "vicodin"), HashPassword("drwilson", "vicodin"))
	})

	t.Run("Produces hex of the derived key length", func(t *testing.T) {
		hash := HashPassword("drhouse", "vicodin")
		assert.Len(t, hash, pbkdf2KeyLength*2)
	})
}

func TestSecureCompare(t *testing.T) {
	t.Run("Accepts equal values", func(t *testing.T) {
		hash := HashPassword("drhouse", "vicodin")
		assert.True(t, SecureCompare(hash, hash))
		assert.True(t, SecureCompare("", ""))
	})

	t.Run("Rejects an equal-length mismatch", func(t *testing.T) {
		stored := HashPassword("drhouse", "vicodin")
		claimed := HashPassword("drhouse", "ibuprofen")
		assert.Len(t, claimed, len(stored))
		assert.False(t, SecureCompare(claimed, stored))
	})

	t.Run("Rejects differing lengths in either direction", func(t *testing.T) {
		stored := HashPassword("drhouse", "vicodin")
		assert.False(t, SecureCompare(stored[:len(stored)-1], stored))
		assert.False(t, SecureCompare(stored+"00", stored))
		assert.False(t, SecureCompare("", stored))
		assert.False(t, SecureCompare(stored, ""))
	})

	t.Run("Rejects a stored prefix of the claimed value", func(t *testing.T) {
		// The loop runs over every byte of the claimed value even when
		// the stored one is shorter, so the tail past the stored length
		// must still be read without panicking.
		claimed := strings.Repeat("a", 64)
		stored := claimed[:10]
		assert.False(t, SecureCompare(claimed, stored))
	})
}
