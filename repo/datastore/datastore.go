// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"os"

	badger "github.com/ipfs/go-ds-badger"
	"github.com/xorax-labs/xorax-go/repo"
)

var _ repo.Datastore = (*badger.Datastore)(nil)

// NewXoraxDatastore opens (creating if needed) the badger backed
// datastore in dataDir.
func NewXoraxDatastore(dataDir string, opts ...Option) (repo.Datastore, error) {
	cfg := config{
		maxTableSize:     16 << 20,
		tableLoadingMode: defaultTableLoadingMode,
		gcInterval:       badger.DefaultOptions.GcInterval,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, err
		}
	}

	badgerOpts := badger.DefaultOptions
	badgerOpts.MaxTableSize = cfg.maxTableSize
	badgerOpts.SyncWrites = cfg.syncWrites
	badgerOpts.TableLoadingMode = cfg.tableLoadingMode
	badgerOpts.GcInterval = cfg.gcInterval

	ds, err := badger.NewDatastore(dataDir, &badgerOpts)
	if err != nil {
		return nil, err
	}
	return ds, nil
}
