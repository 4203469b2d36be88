// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Read(p []byte) (int, error) {
	return 0, errors.New("device not available")
}

type shortSource struct{}

func (shortSource) Read(p []byte) (int, error) {
	if len(p) > 4 {
		return 4, nil
	}
	return len(p), nil
}

func TestReadRandom(t *testing.T) {
	b, err := ReadRandom(SystemSource, 32)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	_, err = ReadRandom(failingSource{}, 32)
	assert.ErrorIs(t, err, ErrEntropy)

	_, err = ReadRandom(nil, 32)
	assert.ErrorIs(t, err, ErrEntropy)
}

func TestReadRandomShortRead(t *testing.T) {
	// io.ReadFull keeps reading until the buffer is full.
	b, err := ReadRandom(shortSource{}, 32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}

func TestSeededSource(t *testing.T) {
	var seed [32]byte
	seed[0] = 7

	a, err := ReadRandom(NewSeededSource(seed), 45)
	require.NoError(t, err)
	b, err := ReadRandom(NewSeededSource(seed), 45)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Reads of odd sizes must produce the same stream as one large read.
	src := NewSeededSource(seed)
	var joined []byte
	for _, n := range []int{3, 1, 8, 13, 20} {
		part, err := ReadRandom(src, n)
		require.NoError(t, err)
		joined = append(joined, part...)
	}
	assert.Equal(t, a, joined)

	seed[0] = 8
	c, err := ReadRandom(NewSeededSource(seed), 45)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
