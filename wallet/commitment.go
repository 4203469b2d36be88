// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package wallet

import (
	"crypto/subtle"
	"encoding/json"

	"github.com/xorax-labs/xorax-go/crypto"
	"github.com/xorax-labs/xorax-go/params/hash"
	"github.com/xorax-labs/xorax-go/types"
)

// Scheme binds the random source and hash function used to produce
// deposit credentials. A Scheme is immutable and safe for concurrent use.
type Scheme struct {
	random crypto.SecureRandomSource
	hash   hash.Function
}

// NewScheme returns a Scheme using the provided capabilities. Nil
// arguments select the system CSPRNG and the default SHA-256.
func NewScheme(random crypto.SecureRandomSource, fn hash.Function) *Scheme {
	if random == nil {
		random = crypto.SystemSource
	}
	if fn == nil {
		fn = hash.Default
	}
	return &Scheme{random: random, hash: fn}
}

// DefaultScheme uses the OS CSPRNG and the standard library SHA-256.
var DefaultScheme = NewScheme(crypto.SystemSource, hash.SHA256)

// GenerateSecret draws a new 32 byte secret.
func (s *Scheme) GenerateSecret() (types.Secret, error) {
	b, err := crypto.ReadRandom(s.random, types.SecretLen)
	if err != nil {
		return types.Secret{}, err
	}
	return types.NewSecret(b), nil
}

// GenerateNullifier draws a new 32 byte nullifier.
func (s *Scheme) GenerateNullifier() (types.Nullifier, error) {
	b, err := crypto.ReadRandom(s.random, types.NullifierLen)
	if err != nil {
		return types.Nullifier{}, err
	}
	return types.NewNullifier(b), nil
}

// ComputeCommitment returns H(secret || nullifier). The secret always
// comes first. Inputs of any length are hashed as given.
func (s *Scheme) ComputeCommitment(secret, nullifier []byte) types.Commitment {
	return types.NewCommitment(s.hash.Sum(secret, nullifier))
}

// VerifyCommitment reports whether secret and nullifier hash to expected.
// A length mismatch is a normal false result. The byte comparison runs
// in constant time.
func (s *Scheme) VerifyCommitment(secret, nullifier, expected []byte) bool {
	computed := s.ComputeCommitment(secret, nullifier)
	if len(computed) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(computed[:], expected) == 1
}

// GenerateDepositCredentials generates a fresh secret and nullifier and
// the commitment that binds them.
func (s *Scheme) GenerateDepositCredentials() (*Credentials, error) {
	secret, err := s.GenerateSecret()
	if err != nil {
		return nil, err
	}
	nullifier, err := s.GenerateNullifier()
	if err != nil {
		return nil, err
	}
	return &Credentials{
		Secret:     secret,
		Nullifier:  nullifier,
		Commitment: s.ComputeCommitment(secret[:], nullifier[:]),
	}, nil
}

// Credentials holds everything needed to withdraw a deposit. Losing the
// secret or nullifier means losing the deposit.
type Credentials struct {
	Secret     types.Secret
	Nullifier  types.Nullifier
	Commitment types.Commitment
}

func (c *Credentials) SecretHex() string     { return c.Secret.String() }
func (c *Credentials) NullifierHex() string  { return c.Nullifier.String() }
func (c *Credentials) CommitmentHex() string { return c.Commitment.String() }

type credentialsJSON struct {
	Secret     types.Secret     `json:"secret"`
	Nullifier  types.Nullifier  `json:"nullifier"`
	Commitment types.Commitment `json:"commitment"`
}

func (c *Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(credentialsJSON{
		Secret:     c.Secret,
		Nullifier:  c.Nullifier,
		Commitment: c.Commitment,
	})
}

func (c *Credentials) UnmarshalJSON(data []byte) error {
	var cj credentialsJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	c.Secret = cj.Secret
	c.Nullifier = cj.Nullifier
	c.Commitment = cj.Commitment
	return nil
}

// GenerateSecret draws a secret using DefaultScheme.
func GenerateSecret() (types.Secret, error) {
	return DefaultScheme.GenerateSecret()
}

// GenerateNullifier draws a nullifier using DefaultScheme.
func GenerateNullifier() (types.Nullifier, error) {
	return DefaultScheme.GenerateNullifier()
}

// ComputeCommitment computes SHA256(secret || nullifier).
func ComputeCommitment(secret, nullifier []byte) types.Commitment {
	return DefaultScheme.ComputeCommitment(secret, nullifier)
}

// VerifyCommitment checks secret and nullifier against expected using
// DefaultScheme.
func VerifyCommitment(secret, nullifier, expected []byte) bool {
	return DefaultScheme.VerifyCommitment(secret, nullifier, expected)
}

// GenerateDepositCredentials generates credentials using DefaultScheme.
func GenerateDepositCredentials() (*Credentials, error) {
	return DefaultScheme.GenerateDepositCredentials()
}
