// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
)

// Secret is the private random value known only to the depositor. It is
// disclosed at withdrawal time.
type Secret [SecretLen]byte

func (s Secret) String() string {
	return ToHex(s[:])
}

func (s Secret) Bytes() []byte {
	return s[:]
}

func (s *Secret) SetBytes(data []byte) {
	copy(s[:], data)
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	n, err := NewSecretFromString(str)
	if err != nil {
		return err
	}
	*s = n
	return nil
}

func NewSecret(b []byte) Secret {
	var s Secret
	s.SetBytes(b)
	return s
}

func NewSecretFromString(s string) (Secret, error) {
	b, err := fromHexFixed(s, SecretLen)
	if err != nil {
		return Secret{}, err
	}
	return NewSecret(b), nil
}
