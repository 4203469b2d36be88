// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/hex"
	"errors"
	"strings"
)

var (
	// ErrOddLengthHex is returned when a hex string (after stripping an
	// optional 0x prefix) has an odd number of characters.
	ErrOddLengthHex = errors.New("invalid hex string: odd length")

	// ErrInvalidHex is returned when a hex string contains characters
	// outside of [0-9a-fA-F].
	ErrInvalidHex = errors.New("invalid hex string: bad character")
)

// ToHex encodes the bytes as lowercase hex with no prefix or separators.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FromHex decodes a hex string into bytes. A single leading "0x" is
// stripped before decoding. Input is case-insensitive.
func FromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 != 0 {
		return nil, ErrOddLengthHex
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}

// fromHexFixed decodes s and requires exactly size bytes.
func fromHexFixed(s string, size int) ([]byte, error) {
	if len(strings.TrimPrefix(s, "0x")) > size*2 {
		return nil, ErrHashStrSize
	}
	b, err := FromHex(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, ErrHashStrSize
	}
	return b, nil
}
