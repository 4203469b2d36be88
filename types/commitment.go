// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"fmt"

	"github.com/xorax-labs/xorax-go/params/hash"
)

var ErrHashStrSize = fmt.Errorf("hex string must encode exactly %d bytes", hash.HashSize)

const (
	CommitmentLen = hash.HashSize
	SecretLen     = 32
	NullifierLen  = 32
)

// Commitment is the public hash binding a Secret and a Nullifier. It is
// published on chain at deposit time.
type Commitment [CommitmentLen]byte

func (c Commitment) String() string {
	return ToHex(c[:])
}

func (c Commitment) Bytes() []byte {
	return c[:]
}

func (c *Commitment) SetBytes(data []byte) {
	copy(c[:], data)
}

func (c Commitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Commitment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := NewCommitmentFromString(s)
	if err != nil {
		return err
	}
	*c = n
	return nil
}

func NewCommitment(b []byte) Commitment {
	var c Commitment
	c.SetBytes(b)
	return c
}

// NewCommitmentFromString decodes a 32 byte hex commitment. A 0x prefix
// is accepted.
func NewCommitmentFromString(s string) (Commitment, error) {
	b, err := fromHexFixed(s, CommitmentLen)
	if err != nil {
		return Commitment{}, err
	}
	return NewCommitment(b), nil
}
