package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("rahsia123")
	require.NoError(t, err)

	assert.NotEqual(t, "rahsia123", hash, "hash tidak boleh sama dengan plaintext")
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NoError(t, CheckPasswordHash(hash, "rahsia123"))
}

func TestCheckPasswordHashWrongPassword(t *testing.T) {
	hash, err := HashPassword("rahsia123")
	require.NoError(t, err)

	assert.Error(t, CheckPasswordHash(hash, "salah"))
}

func TestCheckPasswordHashRejectsPlaintextStored(t *testing.T) {
	// Data lama menyimpan plaintext — compare harus gagal, bukan lolos diam-diam.
	assert.Error(t, CheckPasswordHash("rahsia123", "rahsia123"))
}
