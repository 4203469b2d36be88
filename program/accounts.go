// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package program

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/types"
)

const (
	// DepositRecordLen is the serialized size of a DepositRecord
	// including the discriminator.
	DepositRecordLen = params.DiscriminatorLen + types.CommitmentLen + 8 + 8 + 8 + 1

	// NullifierRecordLen is the serialized size of a NullifierRecord
	// including the discriminator.
	NullifierRecordLen = params.DiscriminatorLen + types.NullifierLen + 1
)

var (
	ErrAccountDiscriminator = errors.New("account discriminator mismatch")
	ErrAccountDataSize      = errors.New("account data too short")
)

// DepositRecord is the account the program creates for each deposit.
type DepositRecord struct {
	Commitment      types.Commitment `json:"commitment"`
	Amount          types.Lamports   `json:"amount"`
	Timestamp       int64            `json:"timestamp"`
	WithdrawalDelay int64            `json:"withdrawalDelay"`
	Withdrawn       bool             `json:"withdrawn"`
}

// Serialize returns the record as laid out on chain.
func (r *DepositRecord) Serialize(p *params.ProgramParams) []byte {
	ser := make([]byte, 0, DepositRecordLen)
	ser = append(ser, p.DepositRecordDiscriminator[:]...)
	ser = append(ser, r.Commitment[:]...)
	ser = binary.LittleEndian.AppendUint64(ser, uint64(r.Amount))
	ser = binary.LittleEndian.AppendUint64(ser, uint64(r.Timestamp))
	ser = binary.LittleEndian.AppendUint64(ser, uint64(r.WithdrawalDelay))
	ser = append(ser, boolByte(r.Withdrawn))
	return ser
}

// Deserialize decodes on chain account data. Trailing bytes beyond the
// record are ignored.
func (r *DepositRecord) Deserialize(p *params.ProgramParams, ser []byte) error {
	if len(ser) < DepositRecordLen {
		return ErrAccountDataSize
	}
	if !bytes.Equal(ser[:params.DiscriminatorLen], p.DepositRecordDiscriminator[:]) {
		return ErrAccountDiscriminator
	}
	ser = ser[params.DiscriminatorLen:]

	copy(r.Commitment[:], ser[:types.CommitmentLen])
	ser = ser[types.CommitmentLen:]
	r.Amount = types.Lamports(binary.LittleEndian.Uint64(ser[0:8]))
	r.Timestamp = int64(binary.LittleEndian.Uint64(ser[8:16]))
	r.WithdrawalDelay = int64(binary.LittleEndian.Uint64(ser[16:24]))
	r.Withdrawn = ser[24] != 0
	return nil
}

// WithdrawableAt returns the earliest time the program will accept a
// withdrawal.
func (r *DepositRecord) WithdrawableAt() time.Time {
	return time.Unix(r.Timestamp+r.WithdrawalDelay, 0)
}

// CanWithdraw reports whether the record is unspent and its delay has
// passed at now.
func (r *DepositRecord) CanWithdraw(now time.Time) bool {
	if r.Withdrawn {
		return false
	}
	return now.Unix() >= r.Timestamp+r.WithdrawalDelay
}

// TimeRemaining returns how long until the record can be withdrawn. It
// is zero once the delay has passed or the record is already withdrawn.
func (r *DepositRecord) TimeRemaining(now time.Time) time.Duration {
	if r.Withdrawn {
		return 0
	}
	remaining := r.Timestamp + r.WithdrawalDelay - now.Unix()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(remaining) * time.Second
}

// NullifierRecord is the account the program creates when a nullifier
// is spent.
type NullifierRecord struct {
	Nullifier types.Nullifier `json:"nullifier"`
	Used      bool            `json:"used"`
}

func (r *NullifierRecord) Serialize(p *params.ProgramParams) []byte {
	ser := make([]byte, 0, NullifierRecordLen)
	ser = append(ser, p.NullifierRecordDiscriminator[:]...)
	ser = append(ser, r.Nullifier[:]...)
	ser = append(ser, boolByte(r.Used))
	return ser
}

func (r *NullifierRecord) Deserialize(p *params.ProgramParams, ser []byte) error {
	if len(ser) < NullifierRecordLen {
		return ErrAccountDataSize
	}
	if !bytes.Equal(ser[:params.DiscriminatorLen], p.NullifierRecordDiscriminator[:]) {
		return ErrAccountDiscriminator
	}
	copy(r.Nullifier[:], ser[params.DiscriminatorLen:params.DiscriminatorLen+types.NullifierLen])
	r.Used = ser[params.DiscriminatorLen+types.NullifierLen] != 0
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
