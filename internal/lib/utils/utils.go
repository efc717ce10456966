// Package utils contains small helpers shared across the project.
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// PrintJSON pretty-prints v to stdout. Used by CLI dry runs.
func PrintJSON(v any) {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		fmt.Println("Error marshalling the JSON:", err)
		return
	}
	fmt.Println(string(out))
}

// NormalizeEmail lowercases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RandomToken returns n random bytes encoded as URL-safe base64.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken is the SHA-256 hex digest stored in place of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NilIfEmpty returns nil for blank strings and a trimmed copy otherwise.
func NilIfEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
