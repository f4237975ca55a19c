package lib_test

import (
	"freshcatch_server/lib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()
	hash, err := lib.HashPassword("correct horse battery staple", lib.DefaultArgonParams)
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := lib.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lib.VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Each hash carries its own salt, so the same password never hashes the same
// way twice.
func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()
	first, err := lib.HashPassword("same-password", lib.DefaultArgonParams)
	require.NoError(t, err)
	second, err := lib.HashPassword("same-password", lib.DefaultArgonParams)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()
	_, err := lib.VerifyPassword("anything", "not-an-argon2-hash")
	assert.Error(t, err)
}

func TestDecodeArgon2Hash_RoundTrip(t *testing.T) {
	t.Parallel()
	hash, err := lib.HashPassword("secret", lib.DefaultArgonParams)
	require.NoError(t, err)

	parts, err := lib.DecodeArgon2Hash(hash)
	require.NoError(t, err)
	assert.Equal(t, lib.DefaultArgonParams.Memory, parts.Memory)
	assert.Equal(t, lib.DefaultArgonParams.Time, parts.Time)
	assert.Equal(t, lib.DefaultArgonParams.Threads, parts.Threads)
	assert.NotEmpty(t, parts.Salt)
	assert.NotEmpty(t, parts.Hash)
}
