// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/program"
	"github.com/xorax-labs/xorax-go/relayer"
	"github.com/xorax-labs/xorax-go/rpc"
	"github.com/xorax-labs/xorax-go/types"
	"github.com/xorax-labs/xorax-go/wallet"
)

// Wallet is an external signer. It owns the depositor key, builds the
// transaction around the instructions, signs and submits it, and
// returns the transaction signature.
type Wallet interface {
	// PublicKey returns the wallet's address. The bool is false if the
	// wallet is not connected.
	PublicKey() (types.Pubkey, bool)

	SendInstructions(ctx context.Context, instructions ...*program.Instruction) (string, error)
}

// AccountReader reads on chain accounts. *rpc.Client satisfies it.
type AccountReader interface {
	GetAccountInfo(ctx context.Context, addr types.Pubkey) (*rpc.AccountInfo, error)
}

// DepositResult is everything needed to later withdraw a deposit.
type DepositResult struct {
	Signature     string       `json:"signature"`
	Commitment    string       `json:"commitment"`
	Secret        string       `json:"secret"`
	Nullifier     string       `json:"nullifier"`
	DepositRecord types.Pubkey `json:"depositRecord"`

	// Withdrawable is the amount left for the recipient after the
	// program deducts its mixing fee.
	Withdrawable types.Lamports `json:"withdrawable"`
}

// WithdrawResult carries the withdraw transaction signature.
type WithdrawResult struct {
	Signature string `json:"signature"`
}

// Client deposits into and withdraws from the mixer program.
type Client struct {
	params   *params.ProgramParams
	reader   AccountReader
	wallet   Wallet
	scheme   *wallet.Scheme
	keystore *wallet.Keystore
	relayer  *relayer.Client
	now      func() time.Time
}

// New returns a Client for the program described by p. The wallet may
// be nil for read only use and relayer withdrawals.
func New(p *params.ProgramParams, reader AccountReader, w Wallet, opts ...Option) *Client {
	c := &Client{
		params: p,
		reader: reader,
		wallet: w,
		scheme: wallet.DefaultScheme,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params returns the program parameters the client was built with.
func (c *Client) Params() *params.ProgramParams {
	return c.params
}

// Deposit generates fresh credentials and deposits amount under their
// commitment. If a keystore is configured the credentials are saved
// before the transaction is sent.
func (c *Client) Deposit(ctx context.Context, amount types.Lamports, delay time.Duration) (*DepositResult, error) {
	if amount < c.params.MinDepositAmount {
		return nil, clientError(ErrBelowMinimum, fmt.Sprintf("minimum deposit amount is %s SOL", c.params.MinDepositAmount))
	}
	if delay < 0 {
		return nil, clientError(ErrNegativeDelay, "withdrawal delay must not be negative")
	}
	depositor, err := c.publicKey()
	if err != nil {
		return nil, err
	}

	creds, err := c.scheme.GenerateDepositCredentials()
	if err != nil {
		return nil, err
	}
	ix, err := program.NewDepositInstruction(c.params, depositor, creds.Commitment, amount, delay)
	if err != nil {
		return nil, err
	}
	recordAddr := ix.Accounts[0].Pubkey

	if c.keystore != nil {
		err := c.keystore.Put(ctx, &wallet.StoredCredentials{
			Credentials:     *creds,
			Network:         c.params.Name,
			Amount:          amount,
			WithdrawalDelay: delay.Truncate(time.Second),
			CreatedAt:       c.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save credentials: %w", err)
		}
	}

	log.Debugw("Sending deposit", "commitment", creds.CommitmentHex(), "record", recordAddr, "amount", amount)

	sig, err := c.wallet.SendInstructions(ctx, ix)
	if err != nil {
		if c.keystore != nil {
			log.Warnw("Deposit failed, credentials remain in keystore", "commitment", creds.CommitmentHex(), "error", err)
		}
		return nil, err
	}

	if c.keystore != nil {
		if err := c.keystore.SetSignature(ctx, creds.Commitment, sig); err != nil {
			log.Errorw("Failed to record deposit signature", "commitment", creds.CommitmentHex(), "error", err)
		}
	}

	log.Infow("Deposit sent", "commitment", creds.CommitmentHex(), "signature", sig)

	return &DepositResult{
		Signature:     sig,
		Commitment:    creds.CommitmentHex(),
		Secret:        creds.SecretHex(),
		Nullifier:     creds.NullifierHex(),
		DepositRecord: recordAddr,
		Withdrawable:  c.params.AfterFee(amount),
	}, nil
}

// DepositSOL is Deposit with the amount given as a decimal SOL string.
func (c *Client) DepositSOL(ctx context.Context, sol string, delay time.Duration) (*DepositResult, error) {
	amount, err := types.LamportsFromSOL(sol)
	if err != nil {
		return nil, err
	}
	return c.Deposit(ctx, amount, delay)
}

// WithdrawViaRelayer asks a relayer to submit the withdrawal so the
// recipient needs no SOL for fees. An empty relayerURL uses the relayer
// set with WithRelayer.
func (c *Client) WithdrawViaRelayer(ctx context.Context, relayerURL, commitmentHex, secretHex, nullifierHex string, recipient types.Pubkey) (*WithdrawResult, error) {
	secret, nullifier, err := parseCredentials(secretHex, nullifierHex)
	if err != nil {
		return nil, err
	}
	commitment, err := types.NewCommitmentFromString(commitmentHex)
	if err != nil {
		return nil, clientError(ErrInvalidCredentials, fmt.Sprintf("invalid commitment: %s", err))
	}
	if !c.scheme.VerifyCommitment(secret[:], nullifier[:], commitment[:]) {
		return nil, clientError(ErrCommitmentMismatch, "secret and nullifier do not match the commitment")
	}

	rc := c.relayer
	if relayerURL != "" {
		rc, err = relayer.NewClient(relayerURL)
		if err != nil {
			return nil, err
		}
	}
	if rc == nil {
		return nil, clientError(ErrNoRelayer, "no relayer configured")
	}

	sig, err := rc.Withdraw(ctx, relayer.WithdrawRequest{
		Commitment: commitment.String(),
		Secret:     secret.String(),
		Nullifier:  nullifier.String(),
		Recipient:  recipient.String(),
	})
	if err != nil {
		return nil, err
	}
	c.markWithdrawn(ctx, commitment)

	log.Infow("Withdrawal submitted via relayer", "relayer", rc.URL(), "commitment", commitment, "signature", sig)
	return &WithdrawResult{Signature: sig.String()}, nil
}

// WithdrawDirect sends the withdraw instruction from the connected
// wallet, which pays the fee.
func (c *Client) WithdrawDirect(ctx context.Context, secretHex, nullifierHex string, recipient types.Pubkey) (*WithdrawResult, error) {
	secret, nullifier, err := parseCredentials(secretHex, nullifierHex)
	if err != nil {
		return nil, err
	}
	commitment := c.scheme.ComputeCommitment(secret[:], nullifier[:])

	payer, err := c.publicKey()
	if err != nil {
		return nil, err
	}
	ix, err := program.NewWithdrawInstruction(c.params, recipient, payer, secret, nullifier, commitment)
	if err != nil {
		return nil, err
	}

	log.Debugw("Sending withdrawal", "commitment", commitment, "recipient", recipient)

	sig, err := c.wallet.SendInstructions(ctx, ix)
	if err != nil {
		return nil, err
	}
	c.markWithdrawn(ctx, commitment)

	log.Infow("Withdrawal sent", "commitment", commitment, "signature", sig)
	return &WithdrawResult{Signature: sig}, nil
}

// FetchDepositRecord loads and decodes the deposit record for
// commitment. A missing account is a ClientError with code
// ErrDepositNotFound.
func (c *Client) FetchDepositRecord(ctx context.Context, commitment types.Commitment) (*program.DepositRecord, error) {
	addr, _, err := program.DepositRecordAddress(c.params, commitment)
	if err != nil {
		return nil, err
	}
	info, err := c.reader.GetAccountInfo(ctx, addr)
	if errors.Is(err, rpc.ErrAccountNotFound) {
		return nil, clientError(ErrDepositNotFound, "deposit record not found")
	} else if err != nil {
		return nil, err
	}
	if info.Owner != c.params.ProgramID {
		return nil, clientError(ErrUnexpectedOwner, fmt.Sprintf("deposit record %s is owned by %s", addr, info.Owner))
	}

	var record program.DepositRecord
	if err := record.Deserialize(c.params, info.Data); err != nil {
		return nil, err
	}
	return &record, nil
}

// CanWithdraw reports whether the deposit exists, is unspent, and its
// delay has passed. A missing record is false. Other failures, such as
// an unreachable node, are returned.
func (c *Client) CanWithdraw(ctx context.Context, commitmentHex string) (bool, error) {
	record, err := c.fetchByHex(ctx, commitmentHex)
	if ErrorIs(err, ErrDepositNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return record.CanWithdraw(c.now()), nil
}

// WithdrawTimeRemaining returns how long until the deposit can be
// withdrawn, or zero if it already can be or has been withdrawn.
func (c *Client) WithdrawTimeRemaining(ctx context.Context, commitmentHex string) (time.Duration, error) {
	record, err := c.fetchByHex(ctx, commitmentHex)
	if err != nil {
		return 0, err
	}
	return record.TimeRemaining(c.now()), nil
}

func (c *Client) fetchByHex(ctx context.Context, commitmentHex string) (*program.DepositRecord, error) {
	commitment, err := types.NewCommitmentFromString(commitmentHex)
	if err != nil {
		return nil, clientError(ErrInvalidCredentials, fmt.Sprintf("invalid commitment: %s", err))
	}
	return c.FetchDepositRecord(ctx, commitment)
}

func (c *Client) publicKey() (types.Pubkey, error) {
	if c.wallet == nil {
		return types.Pubkey{}, clientError(ErrWalletNotConnected, "wallet not connected")
	}
	pk, ok := c.wallet.PublicKey()
	if !ok {
		return types.Pubkey{}, clientError(ErrWalletNotConnected, "wallet not connected")
	}
	return pk, nil
}

func (c *Client) markWithdrawn(ctx context.Context, commitment types.Commitment) {
	if c.keystore == nil {
		return
	}
	err := c.keystore.MarkWithdrawn(ctx, commitment)
	if err != nil && !errors.Is(err, wallet.ErrCredentialsNotFound) {
		log.Errorw("Failed to mark credentials withdrawn", "commitment", commitment, "error", err)
	}
}

func parseCredentials(secretHex, nullifierHex string) (types.Secret, types.Nullifier, error) {
	secret, err := types.NewSecretFromString(secretHex)
	if err != nil {
		return types.Secret{}, types.Nullifier{}, clientError(ErrInvalidCredentials, fmt.Sprintf("invalid secret: %s", err))
	}
	nullifier, err := types.NewNullifierFromString(nullifierHex)
	if err != nil {
		return types.Secret{}, types.Nullifier{}, clientError(ErrInvalidCredentials, fmt.Sprintf("invalid nullifier: %s", err))
	}
	return secret, nullifier, nil
}
