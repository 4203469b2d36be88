// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package wallet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	"github.com/xorax-labs/xorax-go/crypto"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/types"
)

var (
	// ErrCredentialsNotFound is returned when no credentials are stored
	// for a commitment.
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrKeystoreLocked is returned when the passphrase is missing or
	// does not match the one the keystore was created with.
	ErrKeystoreLocked = errors.New("keystore is locked")

	// ErrCorruptRecord is returned when a stored record fails to decode.
	ErrCorruptRecord = errors.New("corrupt keystore record")
)

var keystoreCheckPlaintext = []byte("xorax keystore check")

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// StoredCredentials are deposit credentials plus the metadata recorded
// when the deposit was made.
type StoredCredentials struct {
	Credentials     Credentials    `json:"credentials"`
	Network         string         `json:"network"`
	Amount          types.Lamports `json:"amount"`
	WithdrawalDelay time.Duration  `json:"withdrawalDelay"`
	Signature       string         `json:"signature,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	Withdrawn       bool           `json:"withdrawn"`
}

// record is the on-disk encoding. Secret and Nullifier are empty when
// the record is sealed.
type record struct {
	Commitment []byte `cbor:"1,keyasint"`
	Secret     []byte `cbor:"2,keyasint,omitempty"`
	Nullifier  []byte `cbor:"3,keyasint,omitempty"`
	Sealed     []byte `cbor:"4,keyasint,omitempty"`
	Network    string `cbor:"5,keyasint,omitempty"`
	Amount     uint64 `cbor:"6,keyasint"`
	Delay      int64  `cbor:"7,keyasint"`
	Signature  string `cbor:"8,keyasint,omitempty"`
	CreatedAt  int64  `cbor:"9,keyasint"`
	Withdrawn  bool   `cbor:"10,keyasint"`
}

// KeystoreOption is a configuration option for the Keystore.
type KeystoreOption func(ks *Keystore)

// WithPassphrase encrypts secrets and nullifiers at rest.
func WithPassphrase(passphrase string) KeystoreOption {
	return func(ks *Keystore) {
		ks.passphrase = passphrase
	}
}

// WithKeystoreRandom sets the source used for salts and nonces.
func WithKeystoreRandom(src crypto.SecureRandomSource) KeystoreOption {
	return func(ks *Keystore) {
		ks.random = src
	}
}

// Keystore persists deposit credentials keyed by commitment.
type Keystore struct {
	ds         repo.Datastore
	passphrase string
	random     crypto.SecureRandomSource
	locked     bool

	// Guards passphrase and locked, and serializes writes.
	mtx sync.Mutex
}

// NewKeystore opens the keystore in ds. If the keystore was created with
// a passphrase, a different one fails with ErrKeystoreLocked. Opening
// it with no passphrase succeeds but secrets cannot be read and new
// credentials cannot be added. Opening an unencrypted keystore with a
// passphrase encrypts the records already stored in it.
func NewKeystore(ctx context.Context, ds repo.Datastore, opts ...KeystoreOption) (*Keystore, error) {
	ks := &Keystore{
		ds:     ds,
		random: crypto.SystemSource,
	}
	for _, opt := range opts {
		opt(ks)
	}

	hasCheck, err := repo.HasKeystoreCheck(ctx, ds)
	if err != nil {
		return nil, err
	}
	switch {
	case hasCheck && ks.passphrase == "":
		ks.locked = true
	case hasCheck:
		check, err := repo.LoadKeystoreCheck(ctx, ds)
		if err != nil {
			return nil, err
		}
		if _, err := crypto.DecryptWithPassphrase(ks.passphrase, check); err != nil {
			return nil, ErrKeystoreLocked
		}
	case ks.passphrase != "":
		list, err := ks.listLocked(ctx)
		if err != nil {
			return nil, err
		}
		if err := ks.rekeyLocked(ctx, list, ks.passphrase); err != nil {
			return nil, err
		}
		if len(list) > 0 {
			log.Infow("Encrypted existing keystore records", "records", len(list))
		}
	}
	return ks, nil
}

// Encrypted reports whether secrets are stored encrypted.
func (ks *Keystore) Encrypted() bool {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()
	return ks.locked || ks.passphrase != ""
}

// Put stores sc, replacing any existing entry for the same commitment.
func (ks *Keystore) Put(ctx context.Context, sc *StoredCredentials) error {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()

	if ks.locked {
		return ErrKeystoreLocked
	}
	rec, err := ks.seal(ks.passphrase, sc)
	if err != nil {
		return err
	}
	return ks.putRecord(ctx, ks.ds, rec)
}

// Get returns the credentials stored for commitment.
func (ks *Keystore) Get(ctx context.Context, commitment types.Commitment) (*StoredCredentials, error) {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()

	rec, err := ks.getRecord(ctx, commitment)
	if err != nil {
		return nil, err
	}
	return ks.open(rec)
}

// List returns all stored credentials, oldest first.
func (ks *Keystore) List(ctx context.Context) ([]*StoredCredentials, error) {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()
	return ks.listLocked(ctx)
}

func (ks *Keystore) listLocked(ctx context.Context) ([]*StoredCredentials, error) {
	results, err := ks.ds.Query(ctx, query.Query{Prefix: repo.CredentialsKeyPrefix})
	if err != nil {
		return nil, err
	}
	defer results.Close()

	var list []*StoredCredentials
	for result := range results.Next() {
		if result.Error != nil {
			return nil, result.Error
		}
		var rec record
		if err := cbor.Unmarshal(result.Value, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, err)
		}
		sc, err := ks.open(&rec)
		if err != nil {
			return nil, err
		}
		list = append(list, sc)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Credentials.Commitment.String() < list[j].Credentials.Commitment.String()
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// SetSignature records the deposit transaction signature.
func (ks *Keystore) SetSignature(ctx context.Context, commitment types.Commitment, signature string) error {
	return ks.update(ctx, commitment, func(rec *record) {
		rec.Signature = signature
	})
}

// MarkWithdrawn flags the credentials as spent. It does not need the
// passphrase.
func (ks *Keystore) MarkWithdrawn(ctx context.Context, commitment types.Commitment) error {
	return ks.update(ctx, commitment, func(rec *record) {
		rec.Withdrawn = true
	})
}

// ChangePassphrase re-seals every record under newPassphrase in a single
// batch. An empty passphrase removes encryption. The keystore must be
// unlocked.
func (ks *Keystore) ChangePassphrase(ctx context.Context, newPassphrase string) error {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()

	if ks.locked {
		return ErrKeystoreLocked
	}
	list, err := ks.listLocked(ctx)
	if err != nil {
		return err
	}
	if err := ks.rekeyLocked(ctx, list, newPassphrase); err != nil {
		return err
	}
	log.Infow("Keystore passphrase changed", "records", len(list), "encrypted", newPassphrase != "")
	return nil
}

// rekeyLocked seals list under passphrase and swaps the check value in
// one batch. The caller must hold ks.mtx.
func (ks *Keystore) rekeyLocked(ctx context.Context, list []*StoredCredentials, passphrase string) error {
	batch, err := ks.ds.Batch(ctx)
	if err != nil {
		return err
	}
	for _, sc := range list {
		rec, err := ks.seal(passphrase, sc)
		if err != nil {
			return err
		}
		if err := ks.putRecord(ctx, batch, rec); err != nil {
			return err
		}
	}
	if passphrase == "" {
		err = repo.DeleteKeystoreCheck(ctx, batch)
	} else {
		var check []byte
		check, err = crypto.EncryptWithPassphrase(ks.random, passphrase, keystoreCheckPlaintext)
		if err != nil {
			return err
		}
		err = repo.PutKeystoreCheck(ctx, batch, check)
	}
	if err != nil {
		return err
	}
	if err := batch.Commit(ctx); err != nil {
		return err
	}
	ks.passphrase = passphrase
	return nil
}

// Delete removes the credentials for commitment.
func (ks *Keystore) Delete(ctx context.Context, commitment types.Commitment) error {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()

	key := credentialsKey(commitment)
	has, err := ks.ds.Has(ctx, key)
	if err != nil {
		return err
	}
	if !has {
		return ErrCredentialsNotFound
	}
	return ks.ds.Delete(ctx, key)
}

func (ks *Keystore) update(ctx context.Context, commitment types.Commitment, fn func(rec *record)) error {
	ks.mtx.Lock()
	defer ks.mtx.Unlock()

	rec, err := ks.getRecord(ctx, commitment)
	if err != nil {
		return err
	}
	fn(rec)
	return ks.putRecord(ctx, ks.ds, rec)
}

func (ks *Keystore) getRecord(ctx context.Context, commitment types.Commitment) (*record, error) {
	ser, err := ks.ds.Get(ctx, credentialsKey(commitment))
	if errors.Is(err, datastore.ErrNotFound) {
		return nil, ErrCredentialsNotFound
	} else if err != nil {
		return nil, err
	}
	var rec record
	if err := cbor.Unmarshal(ser, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, err)
	}
	return &rec, nil
}

func (ks *Keystore) putRecord(ctx context.Context, dbtx datastore.Write, rec *record) error {
	ser, err := encMode.Marshal(rec)
	if err != nil {
		return err
	}
	commitment := types.NewCommitment(rec.Commitment)
	return dbtx.Put(ctx, credentialsKey(commitment), ser)
}

func (ks *Keystore) seal(passphrase string, sc *StoredCredentials) (*record, error) {
	rec := &record{
		Commitment: sc.Credentials.Commitment.Bytes(),
		Network:    sc.Network,
		Amount:     uint64(sc.Amount),
		Delay:      int64(sc.WithdrawalDelay / time.Second),
		Signature:  sc.Signature,
		CreatedAt:  sc.CreatedAt.Unix(),
		Withdrawn:  sc.Withdrawn,
	}
	if passphrase == "" {
		rec.Secret = sc.Credentials.Secret.Bytes()
		rec.Nullifier = sc.Credentials.Nullifier.Bytes()
		return rec, nil
	}
	plaintext := make([]byte, 0, types.SecretLen+types.NullifierLen)
	plaintext = append(plaintext, sc.Credentials.Secret[:]...)
	plaintext = append(plaintext, sc.Credentials.Nullifier[:]...)
	sealed, err := crypto.EncryptWithPassphrase(ks.random, passphrase, plaintext)
	if err != nil {
		return nil, err
	}
	rec.Sealed = sealed
	return rec, nil
}

// open requires ks.mtx.
func (ks *Keystore) open(rec *record) (*StoredCredentials, error) {
	if len(rec.Commitment) != types.CommitmentLen {
		return nil, ErrCorruptRecord
	}
	sc := &StoredCredentials{
		Network:         rec.Network,
		Amount:          types.Lamports(rec.Amount),
		WithdrawalDelay: time.Duration(rec.Delay) * time.Second,
		Signature:       rec.Signature,
		CreatedAt:       time.Unix(rec.CreatedAt, 0),
		Withdrawn:       rec.Withdrawn,
	}
	sc.Credentials.Commitment = types.NewCommitment(rec.Commitment)

	secret, nullifier := rec.Secret, rec.Nullifier
	if len(rec.Sealed) > 0 {
		if ks.passphrase == "" {
			return nil, ErrKeystoreLocked
		}
		plaintext, err := crypto.DecryptWithPassphrase(ks.passphrase, rec.Sealed)
		if errors.Is(err, crypto.ErrDecryption) {
			return nil, ErrKeystoreLocked
		} else if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, err)
		}
		if len(plaintext) != types.SecretLen+types.NullifierLen {
			return nil, ErrCorruptRecord
		}
		secret, nullifier = plaintext[:types.SecretLen], plaintext[types.SecretLen:]
	}
	if len(secret) != types.SecretLen || len(nullifier) != types.NullifierLen {
		return nil, ErrCorruptRecord
	}
	sc.Credentials.Secret = types.NewSecret(secret)
	sc.Credentials.Nullifier = types.NewNullifier(nullifier)
	return sc, nil
}

func credentialsKey(commitment types.Commitment) datastore.Key {
	return datastore.NewKey(repo.CredentialsKeyPrefix + commitment.String())
}
