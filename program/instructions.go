// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package program

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/types"
)

const (
	// DepositDataLen is discriminator + commitment + amount (u64) +
	// withdrawal delay (i64).
	DepositDataLen = params.DiscriminatorLen + types.CommitmentLen + 8 + 8

	// WithdrawDataLen is discriminator + secret + nullifier.
	WithdrawDataLen = params.DiscriminatorLen + types.SecretLen + types.NullifierLen
)

var ErrNegativeDelay = errors.New("withdrawal delay must not be negative")

// AccountMeta describes an account referenced by an instruction.
type AccountMeta struct {
	Pubkey     types.Pubkey `json:"pubkey"`
	IsSigner   bool         `json:"isSigner"`
	IsWritable bool         `json:"isWritable"`
}

// Instruction is a single unsigned program instruction. Turning it into
// a signed transaction is the wallet's job.
type Instruction struct {
	ProgramID types.Pubkey       `json:"programId"`
	Accounts  []AccountMeta      `json:"accounts"`
	Data      types.HexEncodable `json:"data"`
}

// NewDepositInstruction builds the deposit instruction. The delay is
// truncated to whole seconds.
func NewDepositInstruction(p *params.ProgramParams, depositor types.Pubkey, commitment types.Commitment, amount types.Lamports, delay time.Duration) (*Instruction, error) {
	if delay < 0 {
		return nil, ErrNegativeDelay
	}
	record, _, err := DepositRecordAddress(p, commitment)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, DepositDataLen)
	data = append(data, p.DepositDiscriminator[:]...)
	data = append(data, commitment[:]...)
	data = binary.LittleEndian.AppendUint64(data, uint64(amount))
	data = binary.LittleEndian.AppendUint64(data, uint64(int64(delay/time.Second)))

	return &Instruction{
		ProgramID: p.ProgramID,
		Accounts: []AccountMeta{
			{Pubkey: record, IsWritable: true},
			{Pubkey: depositor, IsSigner: true, IsWritable: true},
			{Pubkey: p.SystemProgramID},
		},
		Data: data,
	}, nil
}

// NewWithdrawInstruction builds the withdraw instruction. The relayer
// signs and pays the fee; funds go to recipient.
func NewWithdrawInstruction(p *params.ProgramParams, recipient, relayer types.Pubkey, secret types.Secret, nullifier types.Nullifier, commitment types.Commitment) (*Instruction, error) {
	record, _, err := DepositRecordAddress(p, commitment)
	if err != nil {
		return nil, err
	}
	nullifierRecord, _, err := NullifierRecordAddress(p, nullifier)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, WithdrawDataLen)
	data = append(data, p.WithdrawDiscriminator[:]...)
	data = append(data, secret[:]...)
	data = append(data, nullifier[:]...)

	return &Instruction{
		ProgramID: p.ProgramID,
		Accounts: []AccountMeta{
			{Pubkey: record, IsWritable: true},
			{Pubkey: nullifierRecord, IsWritable: true},
			{Pubkey: recipient, IsWritable: true},
			{Pubkey: relayer, IsSigner: true, IsWritable: true},
			{Pubkey: p.SystemProgramID},
		},
		Data: data,
	}, nil
}
