// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/nixberg/chacha-rng-go"
)

// ErrEntropy is returned when a random source fails to produce the
// requested number of bytes. Callers must treat this as fatal for the
// operation; no weaker source is ever substituted.
var ErrEntropy = errors.New("secure random source failure")

// SecureRandomSource supplies cryptographically secure random bytes.
type SecureRandomSource interface {
	io.Reader
}

// SystemSource reads from the operating system CSPRNG.
var SystemSource SecureRandomSource = rand.Reader

// ReadRandom fills a new n byte slice from src. Any error or short
// read is reported as ErrEntropy.
func ReadRandom(src SecureRandomSource, n int) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrEntropy)
	}
	b := make([]byte, n)
	read, err := io.ReadFull(src, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntropy, err)
	}
	if read != n {
		return nil, fmt.Errorf("%w: short read %d of %d", ErrEntropy, read, n)
	}
	return b, nil
}

// SeededSource is a deterministic ChaCha20 stream keyed by a 32 byte
// seed. It is secure only as long as the seed is secret and uniformly
// random.
type SeededSource struct {
	rng *chacha.ChaCha
	buf [8]byte
	off int
	mtx sync.Mutex
}

// NewSeededSource returns a SeededSource for the given seed.
func NewSeededSource(seed [32]byte) *SeededSource {
	var s [8]uint32
	for i := 0; i < 8; i++ {
		s[i] = binary.LittleEndian.Uint32(seed[i*4 : (i+1)*4])
	}
	return &SeededSource{
		rng: chacha.Seeded20(s, 0),
		off: 8,
	}
}

func (c *SeededSource) Read(p []byte) (n int, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	for n < len(p) {
		if c.off == len(c.buf) {
			binary.LittleEndian.PutUint64(c.buf[:], c.rng.Uint64())
			c.off = 0
		}
		copied := copy(p[n:], c.buf[c.off:])
		c.off += copied
		n += copied
	}
	return n, nil
}
