// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLamportsFromSOL(t *testing.T) {
	tests := []struct {
		input    string
		expected Lamports
		err      error
	}{
		{input: "0.01", expected: 10_000_000},
		{input: "1", expected: 1_000_000_000},
		{input: "0.5", expected: 500_000_000},
		{input: "0.000000001", expected: 1},
		{input: "18446744073.709551615", expected: 18446744073709551615},
		{input: "0.0000000001", err: ErrAmountPrecision},
		{input: "-1", err: ErrNegativeAmount},
		{input: "18446744073.709551616", err: ErrAmountOverflow},
	}
	for _, test := range tests {
		l, err := LamportsFromSOL(test.input)
		if test.err != nil {
			assert.ErrorIs(t, err, test.err, test.input)
			continue
		}
		assert.NoError(t, err, test.input)
		assert.Equal(t, test.expected, l, test.input)
	}

	_, err := LamportsFromSOL("abc")
	assert.Error(t, err)
}

func TestLamportsJsonMarshaling(t *testing.T) {
	a := Lamports(230584300921369395)

	assert.InDelta(t, 230584300.921369395, a.ToSOL(), 1e-6)
	assert.Equal(t, "230584300.921369395", a.String())

	j, err := a.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "230584300.921369395", string(j))

	var a2 Lamports
	err = a2.UnmarshalJSON(j)
	assert.NoError(t, err)
	assert.Equal(t, a, a2)

	assert.Equal(t, []byte{0x80, 0x96, 0x98, 0, 0, 0, 0, 0}, Lamports(10_000_000).ToBytes())
}
