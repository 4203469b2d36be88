// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package program

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/types"
)

func sequential(start byte) []byte {
	b := make([]byte, 32)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func TestDepositRecordAddress(t *testing.T) {
	commitment, err := types.NewCommitmentFromString("fdeab9acf3710362bd2658cdc9a29e8f9c757fcf9811603a8c447cd1d9151108")
	require.NoError(t, err)

	addr, bump, err := DepositRecordAddress(&params.DevnetParams, commitment)
	require.NoError(t, err)
	assert.Equal(t, "Ef5kYP7cZLXhCcTjwK2wz2KMFTQFDT49EzjegU3WUX2V", addr.String())
	assert.Equal(t, uint8(255), bump)
	assert.False(t, IsOnCurve(addr[:]))
}

func TestNullifierRecordAddress(t *testing.T) {
	nullifier := types.NewNullifier(sequential(32))

	addr, bump, err := NullifierRecordAddress(&params.DevnetParams, nullifier)
	require.NoError(t, err)
	assert.Equal(t, "91m5deFvfsRLNS353ssk4C1qwAqsqHri6ha4MUQeJ6L4", addr.String())
	assert.Equal(t, uint8(255), bump)
}

func TestFindProgramAddressSkipsOnCurve(t *testing.T) {
	seeds := [][]byte{[]byte("deposit"), bytes.Repeat([]byte{0x02}, 32)}

	addr, bump, err := FindProgramAddress(seeds, params.DevnetParams.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, uint8(254), bump)
	assert.Equal(t, "7XmnuynvhA4oDmHtdGgBDCc6mmvhiNt9fXVqDMe8TDBc", addr.String())

	_, err = CreateProgramAddress(append(seeds, []byte{255}), params.DevnetParams.ProgramID)
	assert.ErrorIs(t, err, ErrInvalidSeeds)

	addr2, err := CreateProgramAddress(append(seeds, []byte{254}), params.DevnetParams.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)
}

func TestCreateProgramAddressLimits(t *testing.T) {
	_, err := CreateProgramAddress([][]byte{make([]byte, MaxSeedLen+1)}, params.DevnetParams.ProgramID)
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)

	_, err = CreateProgramAddress(make([][]byte, MaxSeeds+1), params.DevnetParams.ProgramID)
	assert.ErrorIs(t, err, ErrTooManySeeds)

	_, _, err = FindProgramAddress(make([][]byte, MaxSeeds), params.DevnetParams.ProgramID)
	assert.ErrorIs(t, err, ErrTooManySeeds)
}

func TestIsOnCurve(t *testing.T) {
	// The ed25519 base point.
	base := []byte{
		0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	}
	assert.True(t, IsOnCurve(base))
	assert.False(t, IsOnCurve(base[:31]))
}
