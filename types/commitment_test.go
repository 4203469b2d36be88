// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSerializedHash = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
)

func TestNewNullifierFromString(t *testing.T) {
	n, err := NewNullifierFromString(testSerializedHash)
	if err != nil {
		t.Error(err)
	}

	if n.String() != testSerializedHash {
		t.Errorf("Expected %s, got %s", testSerializedHash, n.String())
	}

	n2, err := NewNullifierFromString("0x" + testSerializedHash)
	assert.NoError(t, err)
	assert.Equal(t, n, n2)

	_, err = NewNullifierFromString(testSerializedHash[:62])
	assert.ErrorIs(t, err, ErrHashStrSize)

	_, err = NewNullifierFromString(testSerializedHash + "00")
	assert.ErrorIs(t, err, ErrHashStrSize)
}

func TestFixedSizeJSON(t *testing.T) {
	type bundle struct {
		Secret     Secret     `json:"secret"`
		Nullifier  Nullifier  `json:"nullifier"`
		Commitment Commitment `json:"commitment"`
	}

	var b bundle
	for i := range b.Secret {
		b.Secret[i] = byte(i)
		b.Nullifier[i] = byte(i + 32)
		b.Commitment[i] = byte(i + 64)
	}

	out, err := json.Marshal(&b)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"secret":"`+testSerializedHash+`"`)

	var b2 bundle
	require.NoError(t, json.Unmarshal(out, &b2))
	assert.Equal(t, b, b2)

	err = json.Unmarshal([]byte(`{"secret":"abc"}`), &b2)
	assert.ErrorIs(t, err, ErrOddLengthHex)
}

func TestNewCommitmentFromString(t *testing.T) {
	c, err := NewCommitmentFromString(testSerializedHash)
	require.NoError(t, err)
	assert.Equal(t, testSerializedHash, c.String())
	assert.Len(t, c.Bytes(), CommitmentLen)

	s, err := NewSecretFromString(testSerializedHash)
	require.NoError(t, err)
	assert.Equal(t, c.Bytes(), s.Bytes())
}
