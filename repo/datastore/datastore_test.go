// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewXoraxDatastore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keystore")
	ds, err := NewXoraxDatastore(dir, WithSyncWrites(), WithFileIO(), WithGCInterval(0))
	require.NoError(t, err)

	ctx := context.Background()
	key := datastore.NewKey("/xorax/credentials/abcd")
	require.NoError(t, ds.Put(ctx, key, []byte{1, 2, 3}))

	val, err := ds.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, val)

	res, err := ds.Query(ctx, query.Query{Prefix: "/xorax/credentials"})
	require.NoError(t, err)
	entries, err := res.Rest()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	require.NoError(t, ds.Close())

	// Reopen and make sure the value persisted.
	ds, err = NewXoraxDatastore(dir)
	require.NoError(t, err)
	defer ds.Close()
	has, err := ds.Has(ctx, key)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestWithMaxTableSize(t *testing.T) {
	_, err := NewXoraxDatastore(t.TempDir(), WithMaxTableSize(0))
	assert.Error(t, err)
}
