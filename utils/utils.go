package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RandToken returns 24 random bytes encoded in base62, suitable for invitation links
func RandToken() string {
	return randBytesToBase62(24)
}

func randBytesToBase62(size int) string {
	buf := make([]byte, size)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	var i big.Int
	return i.SetBytes(buf).Text(62)
}

// NormalizeEmail lowercases and trims an address so it can be compared and stored
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail is a loose sanity check, the address is verified by actually mailing it
func IsEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
