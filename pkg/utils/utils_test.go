package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword"
	hashedPassword, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "testpassword"
	hashedPassword, _ := HashPassword(password)

	// Test with correct password
	assert.True(t, CheckPasswordHash(password, hashedPassword))

	// Test with incorrect password
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
	assert.False(t, CheckPasswordHash(password, "not-a-hash"))
}

func TestGenerateAccountNumber(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		n, err := GenerateAccountNumber()
		require.NoError(t, err)
		assert.Len(t, n, AccountNumberLength)
		for _, r := range n {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in %s", r, n)
		}
		seen[n] = struct{}{}
	}
	// 50 draws out of 10^10 should not collide
	assert.Len(t, seen, 50)
}
