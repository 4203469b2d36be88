// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"context"

	"github.com/ipfs/go-datastore"
)

func HasKeystoreCheck(ctx context.Context, ds Datastore) (bool, error) {
	return ds.Has(ctx, datastore.NewKey(KeystoreCheckKey))
}

func LoadKeystoreCheck(ctx context.Context, ds Datastore) ([]byte, error) {
	return ds.Get(ctx, datastore.NewKey(KeystoreCheckKey))
}

// PutKeystoreCheck writes the passphrase check value. dbtx may be the
// datastore itself or a batch.
func PutKeystoreCheck(ctx context.Context, dbtx datastore.Write, check []byte) error {
	return dbtx.Put(ctx, datastore.NewKey(KeystoreCheckKey), check)
}

func DeleteKeystoreCheck(ctx context.Context, dbtx datastore.Write) error {
	return dbtx.Delete(ctx, datastore.NewKey(KeystoreCheckKey))
}
