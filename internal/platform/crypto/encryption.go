// Package crypto seals client state persisted to disk. The durable store
// carries the auth token between sessions, so when a key is configured the
// file contents must not be readable in plain text.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// Sealer encrypts and decrypts byte blobs with AES-GCM. An empty key yields
// a passthrough sealer, so callers never need to branch on whether sealing
// is configured.
type Sealer struct {
	key []byte
}

// NewSealer builds a sealer from a hex, base64 or raw key string. The key
// must decode to exactly 32 bytes; an empty string is a valid no-op sealer.
func NewSealer(key string) (*Sealer, error) {
	if key == "" {
		return &Sealer{}, nil
	}
	decoded := decodeKey(key)
	if len(decoded) != 32 {
		return nil, fmt.Errorf("storage key must be 32 bytes after decoding, got %d", len(decoded))
	}
	return &Sealer{key: decoded}, nil
}

// Configured reports whether the sealer holds a usable key.
func (s *Sealer) Configured() bool {
	return len(s.key) == 32
}

// Seal encrypts plain, prefixing the random nonce. Without a key the input
// is returned unchanged.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	if !s.Configured() || len(plain) == 0 {
		return plain, nil
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// Open reverses Seal. Without a key the input is returned unchanged.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if !s.Configured() || len(sealed) == 0 {
		return sealed, nil
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed data too short")
	}
	return gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
}

func (s *Sealer) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// decodeKey accepts a 64-char hex string, standard or raw base64, or the
// raw bytes of the string itself.
func decodeKey(raw string) []byte {
	if len(raw) == 64 {
		if decoded, err := hex.DecodeString(raw); err == nil {
			return decoded
		}
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	return []byte(raw)
}
