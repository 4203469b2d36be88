// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package program

import (
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/types"
)

func TestDepositRecordSerialization(t *testing.T) {
	p := &params.DevnetParams
	record := DepositRecord{
		Commitment:      types.NewCommitment(sequential(0)),
		Amount:          123_000_000,
		Timestamp:       1_700_000_000,
		WithdrawalDelay: 600,
		Withdrawn:       true,
	}

	ser := record.Serialize(p)
	assert.Len(t, ser, DepositRecordLen)
	assert.Equal(t, p.DepositRecordDiscriminator[:], ser[:8])

	var record2 DepositRecord
	require.NoError(t, record2.Deserialize(p, append(ser, 0, 0, 0)))
	assert.Empty(t, deep.Equal(record, record2))

	assert.ErrorIs(t, record2.Deserialize(p, ser[:DepositRecordLen-1]), ErrAccountDataSize)

	ser[0] ^= 0xff
	assert.ErrorIs(t, record2.Deserialize(p, ser), ErrAccountDiscriminator)
}

func TestNullifierRecordSerialization(t *testing.T) {
	p := &params.DevnetParams
	record := NullifierRecord{
		Nullifier: types.NewNullifier(sequential(32)),
		Used:      true,
	}
	ser := record.Serialize(p)
	assert.Len(t, ser, NullifierRecordLen)

	var record2 NullifierRecord
	require.NoError(t, record2.Deserialize(p, ser))
	assert.Equal(t, record, record2)

	// A deposit record is not a nullifier record.
	dr := DepositRecord{}
	assert.ErrorIs(t, record2.Deserialize(p, dr.Serialize(p)), ErrAccountDiscriminator)
}

func TestDepositRecordTiming(t *testing.T) {
	record := DepositRecord{
		Timestamp:       1_700_000_000,
		WithdrawalDelay: 300,
	}
	deposited := time.Unix(1_700_000_000, 0)

	assert.Equal(t, time.Unix(1_700_000_300, 0), record.WithdrawableAt())

	assert.False(t, record.CanWithdraw(deposited))
	assert.Equal(t, 300*time.Second, record.TimeRemaining(deposited))

	assert.False(t, record.CanWithdraw(deposited.Add(299*time.Second)))
	assert.Equal(t, time.Second, record.TimeRemaining(deposited.Add(299*time.Second)))

	assert.True(t, record.CanWithdraw(deposited.Add(300*time.Second)))
	assert.Equal(t, time.Duration(0), record.TimeRemaining(deposited.Add(300*time.Second)))
	assert.Equal(t, time.Duration(0), record.TimeRemaining(deposited.Add(time.Hour)))

	record.Withdrawn = true
	assert.False(t, record.CanWithdraw(deposited.Add(time.Hour)))
	assert.Equal(t, time.Duration(0), record.TimeRemaining(deposited))
}
