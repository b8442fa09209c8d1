// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package secrets encrypts provider credentials before they reach the
// database. Values are sealed with ChaCha20-Poly1305 under a service-wide
// master key; each seal uses a fresh random nonce prepended to the
// ciphertext, and the whole box is stored hex-encoded.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/chacha20poly1305"
)

// Box seals and opens credential strings.
type Box struct {
	key []byte
}

// New creates a Box from a 64-hex-char master key. An empty key is allowed
// in development: a fixed key is substituted with a loud warning so the
// service still runs locally without setup.
func New(hexKey string) (*Box, error) {
	if hexKey == "" {
		slog.Warn("SECRETS_KEY not set — using an insecure development key")
		hexKey = "0000000000000000000000000000000000000000000000000000000000000000"
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("secrets: key is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("secrets: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &Box{key: key}, nil
}

// Seal encrypts a plaintext credential. Sealing the empty string yields
// the empty string, so "no credential" round-trips as-is.
func (b *Box) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aead, err := chacha20poly1305.New(b.key)
	if err != nil {
		return "", fmt.Errorf("secrets seal: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secrets nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (b *Box) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	raw, err := hex.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("secrets open: %w", err)
	}

	aead, err := chacha20poly1305.New(b.key)
	if err != nil {
		return "", fmt.Errorf("secrets open: %w", err)
	}

	if len(raw) < aead.NonceSize() {
		return "", fmt.Errorf("secrets open: sealed value too short")
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("secrets open: %w", err)
	}
	return string(plaintext), nil
}
