// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package client

import (
	"time"

	"github.com/xorax-labs/xorax-go/relayer"
	"github.com/xorax-labs/xorax-go/wallet"
)

// Option is a configuration option for the Client.
type Option func(c *Client)

// WithScheme sets the commitment scheme used to generate credentials.
func WithScheme(scheme *wallet.Scheme) Option {
	return func(c *Client) {
		c.scheme = scheme
	}
}

// WithKeystore persists generated credentials before each deposit is
// sent and marks them withdrawn afterwards.
func WithKeystore(ks *wallet.Keystore) Option {
	return func(c *Client) {
		c.keystore = ks
	}
}

// WithClock replaces time.Now for withdrawal delay checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithRelayer sets the default relayer used by WithdrawViaRelayer.
func WithRelayer(r *relayer.Client) Option {
	return func(c *Client) {
		c.relayer = r
	}
}
