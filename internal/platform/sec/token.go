// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token with byteLength bytes
// of entropy drawn from the operating system CSPRNG.
//
// # Security
//
// Session tokens are unguessable bearer credentials. 32 bytes (256 bits) is
// the floor — never substitute a counter, timestamp, or math/rand source.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}
