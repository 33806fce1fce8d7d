// Package hash computes the password digests stored in users.password.
//
// Digests are unsalted hex strings so that login can be an exact-match
// lookup on (email, digest).
package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
)

type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
)

type Hasher interface {
	Calculate(plaintext string) (string, error)
	Verify(plaintext, expected string) (bool, error)
}

type PasswordHasher struct {
	algorithm Algorithm
}

// NewPasswordHasher fails fast on an unknown algorithm so a bad config is
// caught at start-up rather than on the first registration.
func NewPasswordHasher(algorithm Algorithm) (*PasswordHasher, error) {
	h := &PasswordHasher{algorithm: algorithm}
	if _, err := h.newHash(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *PasswordHasher) Calculate(plaintext string) (string, error) {
	hasher, err := h.newHash()
	if err != nil {
		return "", err
	}

	hasher.Write([]byte(plaintext))
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func (h *PasswordHasher) Verify(plaintext, expected string) (bool, error) {
	digest, err := h.Calculate(plaintext)
	if err != nil {
		return false, err
	}
	return digest == expected, nil
}

func (h *PasswordHasher) newHash() (hash.Hash, error) {
	switch h.algorithm {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", h.algorithm)
	}
}
