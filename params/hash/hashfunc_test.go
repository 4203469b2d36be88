// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package hash

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFunc(t *testing.T) {
	// SHA-256 of the empty string.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(HashFunc(nil)))
	assert.Len(t, HashFunc([]byte("abc")), HashSize)
}

func TestImplementationsAgree(t *testing.T) {
	for i := 0; i < 50; i++ {
		a := make([]byte, i*3)
		b := make([]byte, 64-i)
		_, err := rand.Read(a)
		require.NoError(t, err)
		_, err = rand.Read(b)
		require.NoError(t, err)

		expected := SHA256.Sum(a, b)
		assert.Equal(t, expected, SHA256SIMD.Sum(a, b))
		assert.Equal(t, expected, CatAndHash(SHA256SIMD, [][]byte{a, b}))
		assert.Equal(t, expected, HashFunc(append(append([]byte{}, a...), b...)))
	}
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, fn)

	fn, err = Lookup("SIMD")
	require.NoError(t, err)
	assert.Equal(t, "simd", fn.Name())

	_, err = Lookup("blake2s")
	assert.Error(t, err)
}
