// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package program

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/params/hash"
	"github.com/xorax-labs/xorax-go/types"
)

const (
	// MaxSeeds is the maximum number of seeds, including the bump, that
	// may be used to derive a program address.
	MaxSeeds = 16

	// MaxSeedLen is the maximum length of any single seed.
	MaxSeedLen = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedLengthExceeded = fmt.Errorf("seed exceeds %d bytes", MaxSeedLen)
	ErrTooManySeeds          = fmt.Errorf("more than %d seeds", MaxSeeds)
	ErrInvalidSeeds          = errors.New("derived address lies on the ed25519 curve")
	ErrNoViableBump          = errors.New("unable to find a viable program address bump seed")
)

// IsOnCurve reports whether b is the encoding of a point on the ed25519
// curve. Program derived addresses must not be.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress derives the address for seeds under programID.
// ErrInvalidSeeds is returned if the result is a valid public key.
func CreateProgramAddress(seeds [][]byte, programID types.Pubkey) (types.Pubkey, error) {
	if len(seeds) > MaxSeeds {
		return types.Pubkey{}, ErrTooManySeeds
	}
	data := make([][]byte, 0, len(seeds)+2)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return types.Pubkey{}, ErrMaxSeedLengthExceeded
		}
		data = append(data, seed)
	}
	data = append(data, programID[:], []byte(pdaMarker))
	digest := hash.CatAndHash(hash.SHA256, data)

	if IsOnCurve(digest) {
		return types.Pubkey{}, ErrInvalidSeeds
	}
	return types.NewPubkey(digest), nil
}

// FindProgramAddress searches bump seeds from 255 down and returns the
// first address that is off the curve along with its bump.
func FindProgramAddress(seeds [][]byte, programID types.Pubkey) (types.Pubkey, uint8, error) {
	bumpSeeds := make([][]byte, len(seeds)+1)
	copy(bumpSeeds, seeds)
	for bump := 255; bump >= 0; bump-- {
		bumpSeeds[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(bumpSeeds, programID)
		if errors.Is(err, ErrInvalidSeeds) {
			continue
		}
		if err != nil {
			return types.Pubkey{}, 0, err
		}
		return addr, uint8(bump), nil
	}
	return types.Pubkey{}, 0, ErrNoViableBump
}

// DepositRecordAddress returns the address of the record the program
// creates for a commitment.
func DepositRecordAddress(p *params.ProgramParams, commitment types.Commitment) (types.Pubkey, uint8, error) {
	return FindProgramAddress([][]byte{p.DepositSeed, commitment[:]}, p.ProgramID)
}

// NullifierRecordAddress returns the address of the record the program
// creates when a nullifier is spent.
func NullifierRecordAddress(p *params.ProgramParams, nullifier types.Nullifier) (types.Pubkey, uint8, error) {
	return FindProgramAddress([][]byte{p.NullifierSeed, nullifier[:]}, p.ProgramID)
}
