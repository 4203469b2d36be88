// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package hash

import (
	"crypto/sha256"
	"fmt"
	"strings"

	sha256simd "github.com/minio/sha256-simd"
)

const HashSize = 32

// Function is the hash capability used to derive commitments. Every
// implementation must compute SHA-256 since the on-chain program
// recomputes commitments with it.
type Function interface {
	// Sum hashes the concatenation of data.
	Sum(data ...[]byte) []byte
	// Name identifies the implementation in config.
	Name() string
}

type stdSHA256 struct{}

func (stdSHA256) Sum(data ...[]byte) []byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

func (stdSHA256) Name() string { return "std" }

type simdSHA256 struct{}

func (simdSHA256) Sum(data ...[]byte) []byte {
	h := sha256simd.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

func (simdSHA256) Name() string { return "simd" }

var (
	// SHA256 is the portable standard library implementation.
	SHA256 Function = stdSHA256{}

	// SHA256SIMD uses SHA-NI/AVX512/ARM SHA extensions where available.
	SHA256SIMD Function = simdSHA256{}

	// Default is the implementation used when none is configured.
	Default = SHA256
)

// Lookup returns the implementation registered under name. An empty
// name selects Default.
func Lookup(name string) (Function, error) {
	switch strings.ToLower(name) {
	case "":
		return Default, nil
	case SHA256.Name():
		return SHA256, nil
	case SHA256SIMD.Name():
		return SHA256SIMD, nil
	default:
		return nil, fmt.Errorf("unknown hash implementation %q", name)
	}
}

// HashFunc hashes data with the default implementation.
func HashFunc(data []byte) []byte {
	return Default.Sum(data)
}
