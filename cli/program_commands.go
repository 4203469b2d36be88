// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tidwall/sjson"
	"github.com/xorax-labs/xorax-go/program"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/rpc"
	"github.com/xorax-labs/xorax-go/types"
)

type PDA struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex"`
	Nullifier  string `short:"u" long:"nullifier" description:"The nullifier in hex"`
}

func (x *PDA) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	if x.Commitment == "" && x.Nullifier == "" {
		return errors.New("one of --commitment or --nullifier is required")
	}

	value := "{}"
	if x.Commitment != "" {
		commitment, err := types.NewCommitmentFromString(x.Commitment)
		if err != nil {
			return err
		}
		addr, bump, err := program.DepositRecordAddress(env.params, commitment)
		if err != nil {
			return err
		}
		value, err = sjson.Set(value, "depositRecord", map[string]interface{}{"address": addr.String(), "bump": bump})
		if err != nil {
			return err
		}
	}
	if x.Nullifier != "" {
		nullifier, err := types.NewNullifierFromString(x.Nullifier)
		if err != nil {
			return err
		}
		addr, bump, err := program.NullifierRecordAddress(env.params, nullifier)
		if err != nil {
			return err
		}
		value, err = sjson.Set(value, "nullifierRecord", map[string]interface{}{"address": addr.String(), "bump": bump})
		if err != nil {
			return err
		}
	}
	fmt.Println(value)
	return nil
}

type GetDepositRecord struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex" required:"true"`
}

func (x *GetDepositRecord) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	commitment, err := types.NewCommitmentFromString(x.Commitment)
	if err != nil {
		return err
	}
	c, err := env.mixerClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpc.DefaultTimeout)
	defer cancel()

	record, err := c.FetchDepositRecord(ctx, commitment)
	if err != nil {
		return err
	}
	addr, _, err := program.DepositRecordAddress(env.params, commitment)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return err
	}
	value, err := sjson.Set(string(out), "address", addr.String())
	if err != nil {
		return err
	}
	value, err = sjson.Set(value, "withdrawableAt", record.WithdrawableAt().Format(time.RFC3339))
	if err != nil {
		return err
	}
	value, err = sjson.Set(value, "canWithdraw", record.CanWithdraw(time.Now()))
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type CanWithdraw struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex" required:"true"`
}

func (x *CanWithdraw) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	c, err := env.mixerClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpc.DefaultTimeout)
	defer cancel()

	ok, err := c.CanWithdraw(ctx, x.Commitment)
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}

type WithdrawTimeRemaining struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex" required:"true"`
}

func (x *WithdrawTimeRemaining) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	c, err := env.mixerClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpc.DefaultTimeout)
	defer cancel()

	remaining, err := c.WithdrawTimeRemaining(ctx, x.Commitment)
	if err != nil {
		return err
	}
	value, err := sjson.Set("{}", "seconds", int64(math.Ceil(remaining.Seconds())))
	if err != nil {
		return err
	}
	value, err = sjson.Set(value, "remaining", remaining.Round(time.Second).String())
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type BuildWithdraw struct {
	opts      *repo.Config
	Secret    string `short:"s" long:"secret" description:"The secret in hex" required:"true"`
	Nullifier string `short:"u" long:"nullifier" description:"The nullifier in hex" required:"true"`
	Recipient string `short:"r" long:"recipient" description:"The address receiving the withdrawal" required:"true"`
	Payer     string `short:"p" long:"payer" description:"The address signing and paying for the transaction" required:"true"`
}

func (x *BuildWithdraw) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	secret, err := types.NewSecretFromString(x.Secret)
	if err != nil {
		return fmt.Errorf("secret: %w", err)
	}
	nullifier, err := types.NewNullifierFromString(x.Nullifier)
	if err != nil {
		return fmt.Errorf("nullifier: %w", err)
	}
	recipient, err := types.NewPubkeyFromString(x.Recipient)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	payer, err := types.NewPubkeyFromString(x.Payer)
	if err != nil {
		return fmt.Errorf("payer: %w", err)
	}
	commitment := env.scheme.ComputeCommitment(secret[:], nullifier[:])

	ix, err := program.NewWithdrawInstruction(env.params, recipient, payer, secret, nullifier, commitment)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(ix, "", "    ")
	if err != nil {
		return err
	}
	value, err := sjson.Set(string(out), "commitment", commitment.String())
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type GetBalance struct {
	opts    *repo.Config
	Address string `short:"a" long:"address" description:"The base58 address" required:"true"`
}

func (x *GetBalance) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	addr, err := types.NewPubkeyFromString(x.Address)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpc.DefaultTimeout)
	defer cancel()

	balance, err := env.rpcClient().GetBalance(ctx, addr)
	if err != nil {
		return err
	}
	fmt.Println(balance.String())
	return nil
}
