// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

const (
	// CredentialsKeyPrefix is the datastore key prefix for deposit
	// credentials, keyed by commitment hex.
	CredentialsKeyPrefix = "/xorax/credentials/"
	// KeystoreCheckKey is the datastore key for the passphrase check value.
	KeystoreCheckKey = "/xorax/keystorecheck/"
)
