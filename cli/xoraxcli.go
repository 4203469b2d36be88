// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pterm/pterm"
	"github.com/xorax-labs/xorax-go/client"
	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/relayer"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/repo/datastore"
	"github.com/xorax-labs/xorax-go/rpc"
	"github.com/xorax-labs/xorax-go/wallet"
)

func main() {
	var configFile string
	for i, arg := range os.Args {
		if strings.HasPrefix(arg, "--configfile=") {
			configFile = strings.Split(arg, "--configfile=")[1]
		} else if arg == "-C" && len(os.Args) > i+1 {
			configFile = os.Args[i+1]
		}
	}

	repo.UseLogger(bootstrapLogger())
	opts := repo.DefaultConfig()
	if err := repo.LoadConfig(configFile, &opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config file: %v\n", err)
		fmt.Fprintln(os.Stderr, "Use xoraxcli -h to show usage")
		os.Exit(1)
	}
	if len(os.Args) == 2 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(repo.VersionString())
		return
	}

	parser := flags.NewNamedParser("xoraxcli", flags.HelpFlag)
	parser.AddGroup("Application options", "General configuration options", &opts)

	// Credentials
	parser.AddCommand("gencredentials", "Generates a new secret, nullifier and commitment", "Generates a new random secret and nullifier and computes their commitment. Use --save to store them in the keystore.", &GenCredentials{opts: &opts})
	parser.AddCommand("computecommitment", "Computes the commitment for a secret and nullifier", "Computes SHA256(secret || nullifier) for the given hex encoded secret and nullifier.", &ComputeCommitment{opts: &opts})
	parser.AddCommand("verifycommitment", "Checks a secret and nullifier against a commitment", "Recomputes the commitment from the secret and nullifier and compares it with the expected value in constant time.", &VerifyCommitment{opts: &opts})
	parser.AddCommand("converthex", "Converts between hex and text or base58", "Converts text or a base58 address to hex, or decodes a hex string.", &ConvertHex{opts: &opts})

	// Program
	parser.AddCommand("pda", "Derives the deposit and nullifier record addresses", "Derives the program derived addresses of the deposit record for a commitment and the nullifier record for a nullifier.", &PDA{opts: &opts})
	parser.AddCommand("getdepositrecord", "Returns the on chain deposit record for a commitment", "Fetches and decodes the deposit record account for the given commitment.", &GetDepositRecord{opts: &opts})
	parser.AddCommand("canwithdraw", "Returns whether a deposit can be withdrawn now", "Returns true if the deposit exists, has not been withdrawn and its withdrawal delay has passed.", &CanWithdraw{opts: &opts})
	parser.AddCommand("withdrawtimeremaining", "Returns the time until a deposit can be withdrawn", "Returns the number of seconds until the deposit's withdrawal delay passes.", &WithdrawTimeRemaining{opts: &opts})
	parser.AddCommand("buildwithdraw", "Builds an unsigned withdraw instruction", "Builds the withdraw instruction for the given credentials so it can be signed and sent by an external wallet.", &BuildWithdraw{opts: &opts})
	parser.AddCommand("getbalance", "Returns the balance of an address", "Returns the balance of an address in SOL.", &GetBalance{opts: &opts})

	// Relayer
	parser.AddCommand("withdrawrelayer", "Withdraws a deposit through a relayer", "Asks the relayer to submit the withdrawal so the recipient needs no SOL for fees. Credentials missing from the command line are loaded from the keystore.", &WithdrawRelayer{opts: &opts})

	// Keystore
	parser.AddCommand("listcredentials", "Lists the credentials in the keystore", "Lists the credentials in the keystore. Secrets are omitted unless --secrets is set.", &ListCredentials{opts: &opts})
	parser.AddCommand("showcredentials", "Returns the stored credentials for a commitment", "Returns the stored credentials, including secret and nullifier, for a commitment.", &ShowCredentials{opts: &opts})
	parser.AddCommand("changepassphrase", "Re-encrypts the keystore under a new passphrase", "Re-encrypts every stored secret and nullifier under a new passphrase. The current passphrase is read from keystorepass.", &ChangePassphrase{opts: &opts})
	parser.AddCommand("deletecredentials", "Removes credentials from the keystore", "Removes the credentials for a commitment from the keystore. Without them the deposit cannot be withdrawn.", &DeleteCredentials{opts: &opts})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			return
		}
		pterm.Error.WithWriter(os.Stderr).Println(err)
		os.Exit(1)
	}
}

// environment is what every command needs once the options are final.
type environment struct {
	cfg    *repo.Config
	params *params.ProgramParams
	scheme *wallet.Scheme
}

func setup(opts *repo.Config) (*environment, error) {
	if err := opts.Finalize(); err != nil {
		return nil, err
	}
	if err := setupLogging(opts.LogDir, opts.LogLevel); err != nil {
		return nil, err
	}
	p, err := opts.Params()
	if err != nil {
		return nil, err
	}
	fn, err := opts.HashFunction()
	if err != nil {
		return nil, err
	}
	return &environment{
		cfg:    opts,
		params: p,
		scheme: wallet.NewScheme(nil, fn),
	}, nil
}

// openKeystore opens the keystore in the data directory. The returned
// func closes the underlying datastore.
func (env *environment) openKeystore(ctx context.Context) (*wallet.Keystore, func(), error) {
	ds, err := datastore.NewXoraxDatastore(env.cfg.KeystoreDir())
	if err != nil {
		return nil, nil, err
	}
	ks, err := wallet.NewKeystore(ctx, ds, wallet.WithPassphrase(env.cfg.KeystorePass))
	if err != nil {
		ds.Close()
		return nil, nil, err
	}
	return ks, func() {
		if err := ds.Close(); err != nil {
			log.Errorw("Error closing keystore", "error", err)
		}
	}, nil
}

func (env *environment) rpcClient() *rpc.Client {
	return rpc.NewClient(env.params.RPCEndpoint, rpc.WithCommitment(env.cfg.RPCCommitment))
}

func (env *environment) mixerClient(opts ...client.Option) (*client.Client, error) {
	opts = append(opts, client.WithScheme(env.scheme))
	if env.cfg.RelayerURL != "" {
		rc, err := relayer.NewClient(env.cfg.RelayerURL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithRelayer(rc))
	}
	return client.New(env.params, env.rpcClient(), nil, opts...), nil
}

// status prints a human readable line to stderr.
func status(format string, a ...interface{}) {
	pterm.Success.WithWriter(os.Stderr).Printfln(format, a...)
}
