package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateShareToken returns a URL-safe random token for public links.
// byteLen is the entropy in bytes before encoding; 24 bytes yields a
// 32-character token.
func GenerateShareToken(byteLen int) (string, error) {
	if byteLen < 16 {
		byteLen = 16
	}
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
