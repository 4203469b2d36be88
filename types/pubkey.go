// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	PubkeyLen    = 32
	SignatureLen = 64
)

var (
	ErrInvalidBase58 = errors.New("invalid base58 string")
	ErrPubkeySize    = fmt.Errorf("pubkey must decode to %d bytes", PubkeyLen)
	ErrSignatureSize = fmt.Errorf("signature must decode to %d bytes", SignatureLen)
)

// SystemProgramID is the address of the native system program.
var SystemProgramID = Pubkey{}

// Pubkey is an on-chain account address.
type Pubkey [PubkeyLen]byte

// Compare returns 1 if pk > target, -1 if pk < target and
// 0 if pk == target.
func (pk Pubkey) Compare(target Pubkey) int {
	for i := 0; i < len(pk); i++ {
		a := pk[i]
		b := target[i]
		if a > b {
			return 1
		}
		if a < b {
			return -1
		}
	}
	return 0
}

func (pk Pubkey) IsZero() bool {
	return pk == Pubkey{}
}

func (pk Pubkey) String() string {
	return base58.Encode(pk[:])
}

func (pk Pubkey) Bytes() []byte {
	return pk[:]
}

func (pk *Pubkey) SetBytes(data []byte) {
	copy(pk[:], data)
}

func (pk Pubkey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

func (pk *Pubkey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p, err := NewPubkeyFromString(s)
	if err != nil {
		return err
	}
	*pk = p
	return nil
}

func NewPubkey(b []byte) Pubkey {
	var pk Pubkey
	pk.SetBytes(b)
	return pk
}

// NewPubkeyFromString decodes a base58 account address.
func NewPubkeyFromString(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("%w: %s", ErrInvalidBase58, err)
	}
	if len(b) != PubkeyLen {
		return Pubkey{}, ErrPubkeySize
	}
	return NewPubkey(b), nil
}

// MustPubkey is like NewPubkeyFromString but panics on error. It is
// intended for package level constants.
func MustPubkey(s string) Pubkey {
	pk, err := NewPubkeyFromString(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// Signature is a transaction signature.
type Signature [SignatureLen]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) Bytes() []byte {
	return s[:]
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sig, err := NewSignatureFromString(str)
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

func NewSignatureFromString(s string) (Signature, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %s", ErrInvalidBase58, err)
	}
	if len(b) != SignatureLen {
		return Signature{}, ErrSignatureSize
	}
	var sig Signature
	copy(sig[:], b)
	return sig, nil
}
