// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
	"github.com/xorax-labs/xorax-go/types"
)

const (
	// DefaultTimeout is the default timeout for the HTTP client.
	DefaultTimeout = 30 * time.Second

	// CommitmentConfirmed is the default commitment level for reads.
	CommitmentConfirmed = "confirmed"

	maxResponseSize = 10 << 20 // 10 MiB
)

var (
	// ErrAccountNotFound is returned when the node reports no account at
	// the requested address.
	ErrAccountNotFound = errors.New("account not found")

	// ErrMalformedResponse is returned when a response is not a valid
	// JSON-RPC envelope or is missing required fields.
	ErrMalformedResponse = errors.New("malformed rpc response")
)

// Error is an error object returned by the node.
type Error struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// AccountInfo is the subset of an account's state the client needs.
type AccountInfo struct {
	Owner      types.Pubkey   `json:"owner"`
	Lamports   types.Lamports `json:"lamports"`
	Data       []byte         `json:"data"`
	Executable bool           `json:"executable"`
	RentEpoch  uint64         `json:"rentEpoch"`
}

// Option is a configuration option for the Client.
type Option func(c *Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithCommitment sets the commitment level used for reads.
func WithCommitment(commitment string) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

// Client is a minimal JSON-RPC client for a Solana node. It performs
// no retries.
type Client struct {
	endpoint   string
	commitment string
	http       *http.Client
	nextID     atomic.Uint64
}

// NewClient returns a client for the node at endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		commitment: CommitmentConfirmed,
		http:       &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Debugw("rpc client created", "endpoint", endpoint)
	return c
}

// Endpoint returns the node URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// GetAccountInfo fetches the account at addr. ErrAccountNotFound is
// returned if it does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, addr types.Pubkey) (*AccountInfo, error) {
	result, err := c.call(ctx, "getAccountInfo", addr.String(), map[string]string{
		"encoding":   "base64",
		"commitment": c.commitment,
	})
	if err != nil {
		return nil, err
	}
	value := result.Get("value")
	if !value.Exists() || value.Type == gjson.Null {
		return nil, ErrAccountNotFound
	}

	data := value.Get("data")
	if !data.IsArray() || data.Get("1").String() != "base64" {
		return nil, fmt.Errorf("%w: unexpected account data encoding", ErrMalformedResponse)
	}
	raw, err := base64.StdEncoding.DecodeString(data.Get("0").String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	owner, err := types.NewPubkeyFromString(value.Get("owner").String())
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %s", ErrMalformedResponse, err)
	}

	return &AccountInfo{
		Owner:      owner,
		Lamports:   types.Lamports(value.Get("lamports").Uint()),
		Data:       raw,
		Executable: value.Get("executable").Bool(),
		RentEpoch:  value.Get("rentEpoch").Uint(),
	}, nil
}

// GetBalance returns the balance of addr in lamports.
func (c *Client) GetBalance(ctx context.Context, addr types.Pubkey) (types.Lamports, error) {
	result, err := c.call(ctx, "getBalance", addr.String(), map[string]string{
		"commitment": c.commitment,
	})
	if err != nil {
		return 0, err
	}
	value := result.Get("value")
	if value.Type != gjson.Number {
		return 0, fmt.Errorf("%w: missing balance", ErrMalformedResponse)
	}
	return types.Lamports(value.Uint()), nil
}

func (c *Client) call(ctx context.Context, method string, params ...interface{}) (gjson.Result, error) {
	id := c.nextID.Add(1)
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debugw("rpc request", "method", method, "id", id)

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if !gjson.ValidBytes(data) {
		if resp.StatusCode != http.StatusOK {
			return gjson.Result{}, fmt.Errorf("rpc http error: %s", resp.Status)
		}
		return gjson.Result{}, ErrMalformedResponse
	}

	parsed := gjson.ParseBytes(data)
	if e := parsed.Get("error"); e.Exists() && e.Type != gjson.Null {
		return gjson.Result{}, &Error{
			Code:    e.Get("code").Int(),
			Message: e.Get("message").String(),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("rpc http error: %s", resp.Status)
	}
	result := parsed.Get("result")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: no result", ErrMalformedResponse)
	}
	return result, nil
}
