// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
//
// # Why argon2id?
//
// The KDF must be memory-hard so that leaked hashes resist GPU cracking.
// Earlier deployments used a single static salt for every account; each hash
// now carries its own random salt, stored next to it, so identical passwords
// never produce identical hashes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword derives an argon2id hash of a plain-text password under a
// freshly generated random salt.
//
// # Returns
//   - hash: base64-encoded derived key.
//   - salt: base64-encoded per-account salt, persisted alongside the hash.
func HashPassword(plainTextPassword string) (hash string, salt string, err error) {
	rawSalt := make([]byte, argonSaltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plainTextPassword), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return base64.RawStdEncoding.EncodeToString(key),
		base64.RawStdEncoding.EncodeToString(rawSalt),
		nil
}

// CheckPasswordHash re-derives the key for a login attempt and compares it to
// the stored hash in constant time.
func CheckPasswordHash(plainTextPassword, existingHash, existingSalt string) bool {
	rawSalt, err := base64.RawStdEncoding.DecodeString(existingSalt)
	if err != nil {
		return false
	}
	rawHash, err := base64.RawStdEncoding.DecodeString(existingHash)
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(plainTextPassword), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return subtle.ConstantTimeCompare(key, rawHash) == 1
}
