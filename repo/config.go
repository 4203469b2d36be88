// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gcash/bchutil"
	"github.com/jessevdk/go-flags"
	"github.com/xorax-labs/xorax-go/params"
	"github.com/xorax-labs/xorax-go/params/hash"
)

//go:embed sample-xorax.conf
var configFS embed.FS

const (
	DefaultLogFilename    = "xorax.log"
	DefaultConfigFilename = "xorax.conf"
	DefaultNetwork        = "devnet"

	keystoreDirname = "keystore"
)

var (
	DefaultHomeDir    = bchutil.AppDataDir("xorax", false)
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFilename)
)

// Config defines the configuration options shared by the xorax tools.
//
// See LoadConfig for details on the configuration load process.
type Config struct {
	ShowVersion   bool   `short:"v" long:"version" description:"Display version information and exit"`
	ConfigFile    string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir       string `short:"d" long:"datadir" description:"Directory to store data"`
	LogDir        string `long:"logdir" description:"Directory to log output"`
	LogLevel      string `short:"l" long:"loglevel" description:"Set the logging level [debug, info, warning, error, alert, critical, emergency] (default: info)"`
	Network       string `short:"n" long:"network" description:"The cluster to use [mainnet, devnet, localnet] (default: devnet)"`
	RPCURL        string `long:"rpcurl" description:"Override the cluster's default JSON-RPC endpoint"`
	RPCCommitment string `long:"rpccommitment" description:"The commitment level used for account reads [processed, confirmed, finalized] (default: confirmed)"`
	RelayerURL    string `long:"relayerurl" description:"The relayer service used for gasless withdrawals"`
	HashImpl      string `long:"hashimpl" description:"The SHA-256 implementation used for commitments [std, simd] (default: std)"`
	KeystorePass  string `long:"keystorepass" description:"Passphrase used to encrypt credentials in the keystore"`
}

// DefaultConfig returns a config with sane settings.
func DefaultConfig() Config {
	return Config{
		ConfigFile:    DefaultConfigFile,
		DataDir:       DefaultHomeDir,
		LogLevel:      "info",
		Network:       DefaultNetwork,
		RPCCommitment: "confirmed",
		HashImpl:      hash.SHA256.Name(),
	}
}

// LoadConfig loads the INI config file at configFile into cfg. If the
// file does not exist a default one is written from the embedded sample.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Load configuration file overwriting defaults with any specified options
//  3. The caller parses CLI options and overwrites/adds any specified options
//
// Command line options always take precedence.
func LoadConfig(configFile string, cfg *Config) error {
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	configFile = CleanAndExpandPath(configFile)

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := CreateDefaultConfigFile(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating a "+
				"default config file: %v\n", err)
		}
	}

	parser := flags.NewParser(cfg, flags.IgnoreUnknown)
	err := flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return fmt.Errorf("error parsing config file: %w", err)
		}
		log.Warn("Bad config file", log.Args("error", err.Error()))
	}
	cfg.ConfigFile = configFile
	return nil
}

// Finalize validates the options and fills in the derived directories.
// It must be called after the command line has been parsed.
func (cfg *Config) Finalize() error {
	netParams, err := params.NetworkParams(cfg.Network)
	if err != nil {
		return err
	}
	if _, err := hash.Lookup(cfg.HashImpl); err != nil {
		return err
	}
	switch cfg.RPCCommitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("unknown rpc commitment level %q", cfg.RPCCommitment)
	}

	cfg.DataDir = CleanAndExpandPath(path.Join(cfg.DataDir, netParams.Name))
	if cfg.LogDir == "" {
		cfg.LogDir = CleanAndExpandPath(path.Join(cfg.DataDir, "logs"))
	} else {
		cfg.LogDir = CleanAndExpandPath(cfg.LogDir)
	}
	return nil
}

// KeystoreDir is the directory holding the credential datastore.
func (cfg *Config) KeystoreDir() string {
	return path.Join(cfg.DataDir, keystoreDirname)
}

// Params returns the program parameters for the configured network with
// the RPC endpoint override applied.
func (cfg *Config) Params() (*params.ProgramParams, error) {
	netParams, err := params.NetworkParams(cfg.Network)
	if err != nil {
		return nil, err
	}
	p := *netParams
	if cfg.RPCURL != "" {
		p.RPCEndpoint = cfg.RPCURL
	}
	return &p, nil
}

// HashFunction returns the configured commitment hash implementation.
func (cfg *Config) HashFunction() (hash.Function, error) {
	return hash.Lookup(cfg.HashImpl)
}

// CreateDefaultConfigFile copies the sample-xorax.conf content to the
// given destination path.
func CreateDefaultConfigFile(destinationPath string) error {
	// Create the destination directory if it does not exists
	err := os.MkdirAll(filepath.Dir(destinationPath), 0700)
	if err != nil {
		return err
	}

	sampleBytes, err := fs.ReadFile(configFS, "sample-xorax.conf")
	if err != nil {
		return err
	}
	src := bytes.NewReader(sampleBytes)

	dest, err := os.OpenFile(destinationPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dest.Close()

	reader := bufio.NewReader(src)
	for err != io.EOF {
		var line string
		line, err = reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if _, err := dest.WriteString(line); err != nil {
			return err
		}
	}

	return nil
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func CleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
