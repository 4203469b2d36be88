// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
)

// Nullifier is the private random value disclosed at withdrawal. The
// program records it to prevent the same deposit being withdrawn twice.
type Nullifier [NullifierLen]byte

func (n Nullifier) String() string {
	return ToHex(n[:])
}

func (n Nullifier) Bytes() []byte {
	return n[:]
}

func (n Nullifier) Clone() Nullifier {
	var b [len(n)]byte
	copy(b[:], n[:])
	return b
}

func (n *Nullifier) SetBytes(data []byte) {
	copy(n[:], data)
}

func (n Nullifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *Nullifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	i, err := NewNullifierFromString(s)
	if err != nil {
		return err
	}
	*n = i
	return nil
}

func NewNullifier(b []byte) Nullifier {
	var n Nullifier
	n.SetBytes(b)
	return n
}

func NewNullifierFromString(n string) (Nullifier, error) {
	b, err := fromHexFixed(n, NullifierLen)
	if err != nil {
		return Nullifier{}, err
	}
	return NewNullifier(b), nil
}
