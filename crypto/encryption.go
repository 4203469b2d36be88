// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package crypto

import (
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	// Length of nacl nonce
	NonceBytes = 24

	// Length of the scrypt salt
	SaltBytes = 16

	keyBytes = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	// ErrDecryption secretbox decryption failed
	ErrDecryption = errors.New("failed to decrypt: wrong passphrase or corrupt data")

	ErrCiphertextSize = errors.New("ciphertext too short")
)

// EncryptWithPassphrase seals plaintext under a key derived from the
// passphrase with scrypt. The output is salt || nonce || box.
func EncryptWithPassphrase(src SecureRandomSource, passphrase string, plaintext []byte) ([]byte, error) {
	salt, err := ReadRandom(src, SaltBytes)
	if err != nil {
		return nil, err
	}
	n, err := ReadRandom(src, NonceBytes)
	if err != nil {
		return nil, err
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	var nonce [NonceBytes]byte
	copy(nonce[:], n)

	out := make([]byte, 0, SaltBytes+NonceBytes+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

// DecryptWithPassphrase opens a ciphertext produced by EncryptWithPassphrase.
func DecryptWithPassphrase(passphrase string, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < SaltBytes+NonceBytes+secretbox.Overhead {
		return nil, ErrCiphertextSize
	}
	key, err := deriveKey(passphrase, ciphertext[:SaltBytes])
	if err != nil {
		return nil, err
	}
	var nonce [NonceBytes]byte
	copy(nonce[:], ciphertext[SaltBytes:SaltBytes+NonceBytes])

	plaintext, ok := secretbox.Open(nil, ciphertext[SaltBytes+NonceBytes:], &nonce, key)
	if !ok {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

func deriveKey(passphrase string, salt []byte) (*[keyBytes]byte, error) {
	k, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyBytes)
	if err != nil {
		return nil, err
	}
	var key [keyBytes]byte
	copy(key[:], k)
	return &key, nil
}
