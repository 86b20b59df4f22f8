package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}

func TestHashPasswordIsIdempotent(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)

	again, err := HashPassword(hash, 4)
	require.NoError(t, err)
	assert.Equal(t, hash, again)
}

func TestIsHashed(t *testing.T) {
	assert.False(t, IsHashed("plain"))
	assert.True(t, IsHashed("$2a$10$abcdefghijklmnopqrstuv"))
}
