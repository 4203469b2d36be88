// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/options"
)

const defaultTableLoadingMode = options.MemoryMap

// Option is configuration option function for the Datastore
type Option func(cfg *config) error

// WithSyncWrites makes every write fsync before returning.
func WithSyncWrites() Option {
	return func(cfg *config) error {
		cfg.syncWrites = true
		return nil
	}
}

// WithMaxTableSize sets the badger LSM table size in bytes.
func WithMaxTableSize(size int64) Option {
	return func(cfg *config) error {
		if size <= 0 {
			return errors.New("table size must be positive")
		}
		cfg.maxTableSize = size
		return nil
	}
}

// WithFileIO loads tables with standard I/O instead of mmap.
func WithFileIO() Option {
	return func(cfg *config) error {
		cfg.tableLoadingMode = options.FileIO
		return nil
	}
}

// WithGCInterval sets the value log GC interval. Zero disables GC.
func WithGCInterval(interval time.Duration) Option {
	return func(cfg *config) error {
		cfg.gcInterval = interval
		return nil
	}
}

type config struct {
	syncWrites       bool
	maxTableSize     int64
	tableLoadingMode options.FileLoadingMode
	gcInterval       time.Duration
}
