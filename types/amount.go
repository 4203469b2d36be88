// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	LamportsPerSOL = 1e9

	lamportDecimals = 9
)

var (
	ErrAmountPrecision = errors.New("amount has more than 9 decimal places")
	ErrNegativeAmount  = errors.New("amount is negative")
	ErrAmountOverflow  = errors.New("amount overflows uint64 lamports")
)

var maxLamports = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// Lamports represents the base SOL monetary unit.
type Lamports uint64

// ToBytes returns the little endian representation of the amount as
// it is laid out in program instruction data.
func (a Lamports) ToBytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(a))
	return b
}

// ToSOL returns the amount, formatted as SOL. This is lossy for very
// large amounts and should only be used for display.
func (a Lamports) ToSOL() float64 {
	return float64(a) / LamportsPerSOL
}

// String returns the exact decimal SOL representation.
func (a Lamports) String() string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -lamportDecimals).String()
}

func (a Lamports) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Lamports) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	l, err := LamportsFromSOL(s)
	if err != nil {
		return err
	}
	*a = l
	return nil
}

// LamportsFromSOL parses a decimal SOL string into lamports. Amounts that
// cannot be represented exactly in lamports are rejected rather than
// rounded.
func LamportsFromSOL(sol string) (Lamports, error) {
	d, err := decimal.NewFromString(sol)
	if err != nil {
		return 0, err
	}
	if d.Sign() < 0 {
		return 0, ErrNegativeAmount
	}
	l := d.Shift(lamportDecimals)
	if !l.IsInteger() {
		return 0, ErrAmountPrecision
	}
	if l.GreaterThan(maxLamports) {
		return 0, ErrAmountOverflow
	}
	return Lamports(l.BigInt().Uint64()), nil
}
