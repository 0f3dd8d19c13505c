// Package crypto encrypts analysis payloads at rest.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "finhealth analysis records v1"

var (
	ErrEmptySecret = errors.New("encryption secret is empty")
	ErrDecrypt     = errors.New("decryption failed")
)

// Sealer encrypts and decrypts with XChaCha20-Poly1305 under a key derived
// from a configured secret. It is safe for concurrent use.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit key from secret with HKDF-SHA256.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns base64(nonce || ciphertext).
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Any tampering or wrong key yields ErrDecrypt.
func (s *Sealer) Open(token string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrDecrypt
	}
	if len(raw) < s.aead.NonceSize()+s.aead.Overhead() {
		return nil, ErrDecrypt
	}
	nonce, ct := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	pt, err := s.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return pt, nil
}

// SealString is Seal for text.
func (s *Sealer) SealString(plaintext string) (string, error) {
	return s.Seal([]byte(plaintext))
}

// OpenString is Open for text.
func (s *Sealer) OpenString(token string) (string, error) {
	pt, err := s.Open(token)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}
