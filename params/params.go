// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package params

import (
	"fmt"
	"time"

	"github.com/xorax-labs/xorax-go/types"
)

const (
	networkMainnet  = "mainnet"
	networkDevnet   = "devnet"
	networkLocalnet = "localnet"

	// DiscriminatorLen is the length of the Anchor instruction and
	// account discriminators.
	DiscriminatorLen = 8
)

// Discriminator identifies an instruction or account type to the
// program.
type Discriminator [DiscriminatorLen]byte

// ProgramParams describes the deployed mixer program. Everything in here
// is fixed by the program binary and must match it byte for byte.
type ProgramParams struct {
	// Name is a human-readable string to identify the params
	Name string

	// RPCEndpoint is the default JSON-RPC endpoint for the cluster.
	RPCEndpoint string

	// ProgramID is the address the client derives record addresses
	// from and sends instructions to.
	ProgramID types.Pubkey

	// IDLAddress is the address embedded in the published IDL. It is
	// kept for reference only.
	IDLAddress types.Pubkey

	// SystemProgramID is the native system program.
	SystemProgramID types.Pubkey

	// DepositSeed and NullifierSeed prefix the record addresses.
	DepositSeed   []byte
	NullifierSeed []byte

	DepositDiscriminator         Discriminator
	WithdrawDiscriminator        Discriminator
	DepositRecordDiscriminator   Discriminator
	NullifierRecordDiscriminator Discriminator

	// MixingFee is the fee the program deducts from each deposit.
	MixingFee types.Lamports

	// MinDepositAmount is the smallest deposit the client will submit.
	MinDepositAmount types.Lamports

	// DefaultWithdrawalDelay is used when the caller does not choose
	// a delay.
	DefaultWithdrawalDelay time.Duration
}

var (
	programID  = types.MustPubkey("XoPB2WDHGJrnhR78xG9EfuU8PGYHchcPvygycaHuHGz")
	idlAddress = types.MustPubkey("JJWGp5cinhhupX8LNm6oThsuzdt3esnJZZLYTosqMEm")
)

func xoraxProgram(name, endpoint string) ProgramParams {
	return ProgramParams{
		Name:                         name,
		RPCEndpoint:                  endpoint,
		ProgramID:                    programID,
		IDLAddress:                   idlAddress,
		SystemProgramID:              types.SystemProgramID,
		DepositSeed:                  []byte("deposit"),
		NullifierSeed:                []byte("nullifier"),
		DepositDiscriminator:         Discriminator{242, 35, 198, 137, 82, 225, 242, 182},
		WithdrawDiscriminator:        Discriminator{183, 18, 70, 156, 148, 109, 161, 34},
		DepositRecordDiscriminator:   Discriminator{164, 239, 130, 196, 198, 159, 73, 4},
		NullifierRecordDiscriminator: Discriminator{220, 171, 248, 26, 97, 196, 91, 189},
		MixingFee:                    10_000_000, // 0.01 SOL
		MinDepositAmount:             10_000_000, // 0.01 SOL
		DefaultWithdrawalDelay:       300 * time.Second,
	}
}

var MainnetParams = xoraxProgram(networkMainnet, "https://api.mainnet-beta.solana.com")

var DevnetParams = xoraxProgram(networkDevnet, "https://api.devnet.solana.com")

var LocalnetParams = xoraxProgram(networkLocalnet, "http://127.0.0.1:8899")

// AfterFee returns what remains of amount once the mixing fee is
// deducted.
func (p *ProgramParams) AfterFee(amount types.Lamports) types.Lamports {
	if amount <= p.MixingFee {
		return 0
	}
	return amount - p.MixingFee
}

// NetworkParams returns the params registered under name.
func NetworkParams(name string) (*ProgramParams, error) {
	switch name {
	case networkMainnet:
		return &MainnetParams, nil
	case networkDevnet:
		return &DevnetParams, nil
	case networkLocalnet:
		return &LocalnetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}
