// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturdaylabs/saturday/internal/platform/sec"
)

/*
TestHashPassword_Roundtrip verifies that a hashed password verifies against
its own hash and salt, and fails against a different password.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	hash, salt, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash, salt))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash, salt))
}

/*
TestHashPassword_UniqueSalts verifies that hashing the same password twice
produces different salts and therefore different hashes.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, salt1, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	hash2, salt2, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)

	// Each hash only verifies under its own salt.
	assert.True(t, sec.CheckPasswordHash("same-password", hash1, salt1))
	assert.False(t, sec.CheckPasswordHash("same-password", hash1, salt2))
}

/*
TestCheckPasswordHash_CorruptSalt verifies that a salt which is not valid
base64 fails verification instead of panicking.
*/
func TestCheckPasswordHash_CorruptSalt(t *testing.T) {
	hash, _, err := sec.HashPassword("password123")
	require.NoError(t, err)

	assert.False(t, sec.CheckPasswordHash("password123", hash, "!!!not-base64!!!"))
}

/*
TestGenerateSecureToken verifies token length and uniqueness across calls.
*/
func TestGenerateSecureToken(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		token, err := sec.GenerateSecureToken(32)
		require.NoError(t, err)

		// 32 bytes in unpadded base64url is 43 characters.
		assert.Len(t, token, 43)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}
