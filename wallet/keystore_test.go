// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package wallet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorax-labs/xorax-go/crypto"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/repo/mock"
	"github.com/xorax-labs/xorax-go/types"
)

func testStoredCredentials(t *testing.T, scheme *Scheme, created time.Time) *StoredCredentials {
	creds, err := scheme.GenerateDepositCredentials()
	require.NoError(t, err)
	return &StoredCredentials{
		Credentials:     *creds,
		Network:         "devnet",
		Amount:          250_000_000,
		WithdrawalDelay: 5 * time.Minute,
		CreatedAt:       created,
	}
}

func TestKeystore(t *testing.T) {
	ctx := context.Background()
	scheme := NewScheme(crypto.NewSeededSource([32]byte{7}), nil)

	tests := []struct {
		name       string
		passphrase string
	}{
		{"plaintext", ""},
		{"encrypted", "correct horse battery staple"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ds := mock.NewMapDatastore()
			ks, err := NewKeystore(ctx, ds, WithPassphrase(test.passphrase))
			require.NoError(t, err)
			assert.Equal(t, test.passphrase != "", ks.Encrypted())

			now := time.Unix(1_700_000_000, 0)
			sc1 := testStoredCredentials(t, scheme, now)
			sc2 := testStoredCredentials(t, scheme, now.Add(time.Minute))
			require.NoError(t, ks.Put(ctx, sc2))
			require.NoError(t, ks.Put(ctx, sc1))

			got, err := ks.Get(ctx, sc1.Credentials.Commitment)
			require.NoError(t, err)
			assert.Empty(t, deep.Equal(sc1, got))
			assert.True(t, scheme.VerifyCommitment(got.Credentials.Secret[:], got.Credentials.Nullifier[:], got.Credentials.Commitment[:]))

			list, err := ks.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, sc1.Credentials.Commitment, list[0].Credentials.Commitment)
			assert.Equal(t, sc2.Credentials.Commitment, list[1].Credentials.Commitment)

			require.NoError(t, ks.SetSignature(ctx, sc1.Credentials.Commitment, "sig1"))
			require.NoError(t, ks.MarkWithdrawn(ctx, sc1.Credentials.Commitment))
			got, err = ks.Get(ctx, sc1.Credentials.Commitment)
			require.NoError(t, err)
			assert.True(t, got.Withdrawn)
			assert.Equal(t, "sig1", got.Signature)
			assert.Equal(t, sc1.Credentials, got.Credentials)

			require.NoError(t, ks.Delete(ctx, sc1.Credentials.Commitment))
			_, err = ks.Get(ctx, sc1.Credentials.Commitment)
			assert.ErrorIs(t, err, ErrCredentialsNotFound)
			assert.ErrorIs(t, ks.Delete(ctx, sc1.Credentials.Commitment), ErrCredentialsNotFound)
			assert.ErrorIs(t, ks.MarkWithdrawn(ctx, sc1.Credentials.Commitment), ErrCredentialsNotFound)
		})
	}
}

func TestKeystoreLocked(t *testing.T) {
	ctx := context.Background()
	ds := mock.NewMapDatastore()
	scheme := NewScheme(crypto.NewSeededSource([32]byte{8}), nil)

	ks, err := NewKeystore(ctx, ds, WithPassphrase("letmein"))
	require.NoError(t, err)
	sc := testStoredCredentials(t, scheme, time.Unix(1_700_000_000, 0))
	require.NoError(t, ks.Put(ctx, sc))

	_, err = NewKeystore(ctx, ds, WithPassphrase("wrong"))
	assert.ErrorIs(t, err, ErrKeystoreLocked)

	locked, err := NewKeystore(ctx, ds)
	require.NoError(t, err)
	assert.True(t, locked.Encrypted())

	_, err = locked.Get(ctx, sc.Credentials.Commitment)
	assert.ErrorIs(t, err, ErrKeystoreLocked)
	_, err = locked.List(ctx)
	assert.ErrorIs(t, err, ErrKeystoreLocked)
	assert.ErrorIs(t, locked.Put(ctx, sc), ErrKeystoreLocked)

	// Metadata updates do not need the passphrase.
	require.NoError(t, locked.MarkWithdrawn(ctx, sc.Credentials.Commitment))

	reopened, err := NewKeystore(ctx, ds, WithPassphrase("letmein"))
	require.NoError(t, err)
	got, err := reopened.Get(ctx, sc.Credentials.Commitment)
	require.NoError(t, err)
	assert.True(t, got.Withdrawn)
	assert.Equal(t, sc.Credentials.Secret, got.Credentials.Secret)
}

func TestKeystoreChangePassphrase(t *testing.T) {
	ctx := context.Background()
	ds := mock.NewMapDatastore()
	scheme := NewScheme(crypto.NewSeededSource([32]byte{9}), nil)

	ks, err := NewKeystore(ctx, ds)
	require.NoError(t, err)
	sc1 := testStoredCredentials(t, scheme, time.Unix(1_700_000_000, 0))
	sc2 := testStoredCredentials(t, scheme, time.Unix(1_700_000_060, 0))
	require.NoError(t, ks.Put(ctx, sc1))
	require.NoError(t, ks.Put(ctx, sc2))

	require.NoError(t, ks.ChangePassphrase(ctx, "hunter2"))
	assert.True(t, ks.Encrypted())

	// Opening without the new passphrase is now locked.
	locked, err := NewKeystore(ctx, ds)
	require.NoError(t, err)
	_, err = locked.Get(ctx, sc1.Credentials.Commitment)
	assert.ErrorIs(t, err, ErrKeystoreLocked)
	assert.ErrorIs(t, locked.ChangePassphrase(ctx, ""), ErrKeystoreLocked)

	reopened, err := NewKeystore(ctx, ds, WithPassphrase("hunter2"))
	require.NoError(t, err)
	list, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Empty(t, deep.Equal(sc1, list[0]))
	assert.Empty(t, deep.Equal(sc2, list[1]))

	require.NoError(t, reopened.ChangePassphrase(ctx, ""))
	has, err := repo.HasKeystoreCheck(ctx, ds)
	require.NoError(t, err)
	assert.False(t, has)

	plain, err := NewKeystore(ctx, ds)
	require.NoError(t, err)
	assert.False(t, plain.Encrypted())
	got, err := plain.Get(ctx, sc2.Credentials.Commitment)
	require.NoError(t, err)
	assert.Equal(t, sc2.Credentials, got.Credentials)
}

func TestKeystoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	ds := mock.NewMapDatastore()
	ks, err := NewKeystore(ctx, ds)
	require.NoError(t, err)

	commitment := types.NewCommitment(make([]byte, types.CommitmentLen))
	require.NoError(t, ds.Put(ctx, credentialsKey(commitment), []byte{0xff, 0x00}))

	_, err = ks.Get(ctx, commitment)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestKeystoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	ks, err := NewKeystore(ctx, mock.NewMapDatastore())
	require.NoError(t, err)

	sc := testStoredCredentials(t, DefaultScheme, time.Now())
	require.NoError(t, ks.Put(ctx, sc))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, ks.MarkWithdrawn(ctx, sc.Credentials.Commitment))
			} else {
				assert.NoError(t, ks.SetSignature(ctx, sc.Credentials.Commitment, "sig"))
			}
		}(i)
	}
	wg.Wait()

	got, err := ks.Get(ctx, sc.Credentials.Commitment)
	require.NoError(t, err)
	assert.True(t, got.Withdrawn)
	assert.Equal(t, "sig", got.Signature)
}

func TestKeystoreConcurrentPutAndChangePassphrase(t *testing.T) {
	ctx := context.Background()
	ds := mock.NewMapDatastore()
	scheme := NewScheme(crypto.NewSeededSource([32]byte{10}), nil)

	ks, err := NewKeystore(ctx, ds, WithPassphrase("old"))
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	creds := make([]*StoredCredentials, 6)
	for i := range creds {
		creds[i] = testStoredCredentials(t, scheme, now.Add(time.Duration(i)*time.Minute))
	}

	var wg sync.WaitGroup
	for _, sc := range creds {
		wg.Add(1)
		go func(sc *StoredCredentials) {
			defer wg.Done()
			assert.NoError(t, ks.Put(ctx, sc))
		}(sc)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, ks.ChangePassphrase(ctx, "new"))
	}()
	wg.Wait()

	reopened, err := NewKeystore(ctx, ds, WithPassphrase("new"))
	require.NoError(t, err)
	for _, sc := range creds {
		got, err := reopened.Get(ctx, sc.Credentials.Commitment)
		require.NoError(t, err)
		assert.Equal(t, sc.Credentials, got.Credentials)
	}
	list, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(creds))
}

func TestKeystoreEncryptsExistingRecords(t *testing.T) {
	ctx := context.Background()
	ds := mock.NewMapDatastore()
	scheme := NewScheme(crypto.NewSeededSource([32]byte{11}), nil)

	plain, err := NewKeystore(ctx, ds)
	require.NoError(t, err)
	sc := testStoredCredentials(t, scheme, time.Unix(1_700_000_000, 0))
	require.NoError(t, plain.Put(ctx, sc))

	ks, err := NewKeystore(ctx, ds, WithPassphrase("hunter2"))
	require.NoError(t, err)
	assert.True(t, ks.Encrypted())

	ser, err := ds.Get(ctx, credentialsKey(sc.Credentials.Commitment))
	require.NoError(t, err)
	var rec record
	require.NoError(t, cbor.Unmarshal(ser, &rec))
	assert.NotEmpty(t, rec.Sealed)
	assert.Empty(t, rec.Secret)
	assert.Empty(t, rec.Nullifier)

	got, err := ks.Get(ctx, sc.Credentials.Commitment)
	require.NoError(t, err)
	assert.Empty(t, deep.Equal(sc, got))

	locked, err := NewKeystore(ctx, ds)
	require.NoError(t, err)
	assert.True(t, locked.Encrypted())
	_, err = locked.Get(ctx, sc.Credentials.Commitment)
	assert.ErrorIs(t, err, ErrKeystoreLocked)
}
