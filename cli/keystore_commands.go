// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/tidwall/sjson"
	"github.com/xorax-labs/xorax-go/client"
	"github.com/xorax-labs/xorax-go/relayer"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/types"
	"github.com/xorax-labs/xorax-go/wallet"
)

type ListCredentials struct {
	opts    *repo.Config
	Secrets bool `long:"secrets" description:"Include secrets and nullifiers in the output"`
	Table   bool `long:"table" description:"Render a table instead of JSON"`
}

func (x *ListCredentials) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	ctx := context.Background()
	ks, closeFn, err := env.openKeystore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	list, err := ks.List(ctx)
	if err != nil {
		return err
	}

	if x.Table {
		data := pterm.TableData{{"Commitment", "Network", "Amount", "Created", "Withdrawn"}}
		for _, sc := range list {
			data = append(data, []string{
				sc.Credentials.CommitmentHex(),
				sc.Network,
				sc.Amount.String(),
				sc.CreatedAt.Format(time.RFC3339),
				fmt.Sprintf("%t", sc.Withdrawn),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	value := "[]"
	for _, sc := range list {
		out, err := json.Marshal(sc)
		if err != nil {
			return err
		}
		entry := string(out)
		if !x.Secrets {
			entry, err = sjson.Delete(entry, "credentials.secret")
			if err != nil {
				return err
			}
			entry, err = sjson.Delete(entry, "credentials.nullifier")
			if err != nil {
				return err
			}
		}
		value, err = sjson.SetRaw(value, "-1", entry)
		if err != nil {
			return err
		}
	}
	fmt.Println(value)
	return nil
}

type ShowCredentials struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex" required:"true"`
}

func (x *ShowCredentials) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	commitment, err := types.NewCommitmentFromString(x.Commitment)
	if err != nil {
		return err
	}
	ctx := context.Background()
	ks, closeFn, err := env.openKeystore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	sc, err := ks.Get(ctx, commitment)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(sc, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

type DeleteCredentials struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex" required:"true"`
}

func (x *DeleteCredentials) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	commitment, err := types.NewCommitmentFromString(x.Commitment)
	if err != nil {
		return err
	}
	ctx := context.Background()
	ks, closeFn, err := env.openKeystore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := ks.Delete(ctx, commitment); err != nil {
		return err
	}
	status("Deleted credentials for %s", commitment)
	return nil
}

type WithdrawRelayer struct {
	opts       *repo.Config
	Commitment string `short:"c" long:"commitment" description:"The commitment in hex" required:"true"`
	Secret     string `short:"s" long:"secret" description:"The secret in hex. Loaded from the keystore if omitted."`
	Nullifier  string `short:"u" long:"nullifier" description:"The nullifier in hex. Loaded from the keystore if omitted."`
	Recipient  string `short:"r" long:"recipient" description:"The address receiving the withdrawal" required:"true"`
	Relayer    string `long:"relayer" description:"The relayer URL. Defaults to relayerurl from the config."`
}

func (x *WithdrawRelayer) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	recipient, err := types.NewPubkeyFromString(x.Recipient)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	commitment, err := types.NewCommitmentFromString(x.Commitment)
	if err != nil {
		return fmt.Errorf("commitment: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), relayer.DefaultTimeout)
	defer cancel()

	var opts []client.Option
	ks, closeFn, err := env.openKeystore(ctx)
	if err != nil {
		log.Warnw("Keystore unavailable", "error", err)
	} else {
		defer closeFn()
		opts = append(opts, client.WithKeystore(ks))
	}

	secret, nullifier := x.Secret, x.Nullifier
	if secret == "" || nullifier == "" {
		if ks == nil {
			return errors.New("--secret and --nullifier are required when the keystore is unavailable")
		}
		sc, err := ks.Get(ctx, commitment)
		if errors.Is(err, wallet.ErrCredentialsNotFound) {
			return errors.New("credentials not in keystore, pass --secret and --nullifier")
		} else if err != nil {
			return err
		}
		if sc.Withdrawn {
			pterm.Warning.WithWriter(os.Stderr).Println("Keystore marks this deposit as already withdrawn")
		}
		secret, nullifier = sc.Credentials.SecretHex(), sc.Credentials.NullifierHex()
	}

	c, err := env.mixerClient(opts...)
	if err != nil {
		return err
	}
	res, err := c.WithdrawViaRelayer(ctx, x.Relayer, x.Commitment, secret, nullifier, recipient)
	if err != nil {
		return err
	}
	status("Withdrawal submitted")

	out, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return err
	}
	value, err := sjson.Set(string(out), "recipient", recipient.String())
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type ChangePassphrase struct {
	opts          *repo.Config
	NewPassphrase string `long:"newpass" description:"The new passphrase. Empty stores secrets unencrypted."`
}

func (x *ChangePassphrase) Execute(args []string) error {
	env, err := setup(x.opts)
	if err != nil {
		return err
	}
	ctx := context.Background()
	ks, closeFn, err := env.openKeystore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := ks.ChangePassphrase(ctx, x.NewPassphrase); err != nil {
		return err
	}
	if x.NewPassphrase == "" {
		pterm.Warning.WithWriter(os.Stderr).Println("Keystore secrets are now stored unencrypted")
		return nil
	}
	status("Keystore passphrase changed. Update keystorepass in %s", env.cfg.ConfigFile)
	return nil
}
