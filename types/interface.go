// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
)

// HexEncodable is a byte slice that marshals to and from a JSON hex string.
type HexEncodable []byte

func (h HexEncodable) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToHex(h))
}

func (h *HexEncodable) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := FromHex(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}
