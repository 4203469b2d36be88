// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tidwall/sjson"
	"github.com/xorax-labs/xorax-go/program"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/types"
	"github.com/xorax-labs/xorax-go/wallet"
)

type GenCredentials struct {
	opts   *repo.Config
	Save   bool   `long:"save" description:"Store the credentials in the keystore"`
	Amount string `long:"amount" description:"Optional amount in SOL to record with saved credentials"`
}

func (x *GenCredentials) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	creds, err := env.scheme.GenerateDepositCredentials()
	if err != nil {
		return err
	}
	recordAddr, _, err := program.DepositRecordAddress(env.params, creds.Commitment)
	if err != nil {
		return err
	}

	if x.Save {
		var amount types.Lamports
		if x.Amount != "" {
			amount, err = types.LamportsFromSOL(x.Amount)
			if err != nil {
				return err
			}
		}
		ctx := context.Background()
		ks, closeFn, err := env.openKeystore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()
		err = ks.Put(ctx, &wallet.StoredCredentials{
			Credentials: *creds,
			Network:     env.params.Name,
			Amount:      amount,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			return err
		}
		status("Credentials saved to %s", env.cfg.KeystoreDir())
	}

	out, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return err
	}
	value, err := sjson.Set(string(out), "depositRecord", recordAddr.String())
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type ComputeCommitment struct {
	opts      *repo.Config
	Secret    string `short:"s" long:"secret" description:"The secret in hex" required:"true"`
	Nullifier string `short:"u" long:"nullifier" description:"The nullifier in hex" required:"true"`
}

func (x *ComputeCommitment) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	secret, err := types.FromHex(x.Secret)
	if err != nil {
		return fmt.Errorf("secret: %w", err)
	}
	nullifier, err := types.FromHex(x.Nullifier)
	if err != nil {
		return fmt.Errorf("nullifier: %w", err)
	}
	fmt.Println(env.scheme.ComputeCommitment(secret, nullifier).String())
	return nil
}

type VerifyCommitment struct {
	opts       *repo.Config
	Secret     string `short:"s" long:"secret" description:"The secret in hex" required:"true"`
	Nullifier  string `short:"u" long:"nullifier" description:"The nullifier in hex" required:"true"`
	Commitment string `short:"c" long:"commitment" description:"The expected commitment in hex" required:"true"`
}

func (x *VerifyCommitment) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	secret, err := types.FromHex(x.Secret)
	if err != nil {
		return fmt.Errorf("secret: %w", err)
	}
	nullifier, err := types.FromHex(x.Nullifier)
	if err != nil {
		return fmt.Errorf("nullifier: %w", err)
	}
	expected, err := types.FromHex(x.Commitment)
	if err != nil {
		return fmt.Errorf("commitment: %w", err)
	}
	fmt.Println(env.scheme.VerifyCommitment(secret, nullifier, expected))
	return nil
}

type ConvertHex struct {
	opts    *repo.Config
	Text    string `long:"text" description:"UTF-8 text to encode as hex"`
	Base58  string `long:"base58" description:"A base58 address to encode as hex"`
	FromHex string `long:"fromhex" description:"A hex string to decode"`
}

func (x *ConvertHex) Execute(args []string) error {
	if _, err := setup(x.opts); err != nil {
		return err
	}
	switch {
	case x.Text != "":
		fmt.Println(types.ToHex([]byte(x.Text)))
	case x.Base58 != "":
		pk, err := types.NewPubkeyFromString(x.Base58)
		if err != nil {
			return err
		}
		fmt.Println(types.ToHex(pk.Bytes()))
	case x.FromHex != "":
		b, err := types.FromHex(x.FromHex)
		if err != nil {
			return err
		}
		value, err := sjson.Set("{}", "length", len(b))
		if err != nil {
			return err
		}
		value, err = sjson.Set(value, "hex", types.ToHex(b))
		if err != nil {
			return err
		}
		if len(b) == types.PubkeyLen {
			value, err = sjson.Set(value, "base58", types.NewPubkey(b).String())
			if err != nil {
				return err
			}
		}
		if utf8.Valid(b) {
			value, err = sjson.Set(value, "text", string(b))
			if err != nil {
				return err
			}
		}
		fmt.Println(value)
	default:
		return errors.New("one of --text, --base58 or --fromhex is required")
	}
	return nil
}
