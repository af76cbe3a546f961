package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// RandomHex returns n random bytes hex-encoded.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SHA256Hex is the digest stored in place of reset and confirmation tokens.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NewConfirmToken returns a "<20-byte hex>.<100-byte hex>" token and the
// digest of its leading part.
func NewConfirmToken() (raw, hash string, err error) {
	head, err := RandomHex(20)
	if err != nil {
		return "", "", err
	}
	tail, err := RandomHex(100)
	if err != nil {
		return "", "", err
	}
	return head + "." + tail, SHA256Hex(head), nil
}

// ConfirmTokenHash hashes the part of a confirmation token before the first dot.
func ConfirmTokenHash(raw string) string {
	head, _, _ := strings.Cut(raw, ".")
	return SHA256Hex(head)
}
