// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package params

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorax-labs/xorax-go/types"
)

// Anchor derives instruction discriminators from the first eight bytes
// of sha256("global:<name>").
func TestInstructionDiscriminators(t *testing.T) {
	sighash := func(name string) Discriminator {
		h := sha256.Sum256([]byte("global:" + name))
		var d Discriminator
		copy(d[:], h[:DiscriminatorLen])
		return d
	}
	assert.Equal(t, sighash("deposit"), MainnetParams.DepositDiscriminator)
	assert.Equal(t, sighash("withdraw"), MainnetParams.WithdrawDiscriminator)
}

func TestNetworkParams(t *testing.T) {
	for _, name := range []string{"mainnet", "devnet", "localnet"} {
		p, err := NetworkParams(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		assert.Equal(t, "XoPB2WDHGJrnhR78xG9EfuU8PGYHchcPvygycaHuHGz", p.ProgramID.String())
		assert.Equal(t, "11111111111111111111111111111111", p.SystemProgramID.String())
		assert.Equal(t, []byte("deposit"), p.DepositSeed)
		assert.Equal(t, []byte("nullifier"), p.NullifierSeed)
	}

	_, err := NetworkParams("testnet")
	assert.Error(t, err)
}

func TestAfterFee(t *testing.T) {
	p := &DevnetParams
	assert.Equal(t, types.Lamports(490_000_000), p.AfterFee(500_000_000))
	assert.Equal(t, types.Lamports(0), p.AfterFee(p.MixingFee))
	assert.Equal(t, types.Lamports(0), p.AfterFee(1))
}
