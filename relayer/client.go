// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/xorax-labs/xorax-go/types"
)

const (
	// WithdrawEndpoint is the path the relayer accepts withdrawals on.
	WithdrawEndpoint = "/withdraw"

	// DefaultTimeout is the default timeout for the HTTP client.
	DefaultTimeout = 60 * time.Second

	defaultFailureMessage = "withdrawal failed"
)

// ErrNoSignature is returned when the relayer accepts a withdrawal but
// does not report a transaction signature.
var ErrNoSignature = errors.New("relayer response missing signature")

// Error is a withdrawal rejected by the relayer.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("withdrawal failed: %s", e.Message)
}

// WithdrawRequest is the body posted to the relayer. All byte values
// are lowercase hex and the recipient is a base58 address.
type WithdrawRequest struct {
	Commitment string `json:"commitment"`
	Secret     string `json:"secret"`
	Nullifier  string `json:"nullifier"`
	Recipient  string `json:"recipient"`
}

// Option is a configuration option for the Client.
type Option func(c *Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// Client submits withdrawals to a relayer service which signs and pays
// for the withdraw transaction.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the relayer at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported relayer url scheme %q", u.Scheme)
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the relayer base URL.
func (c *Client) URL() string {
	return c.baseURL
}

// Withdraw posts the request and returns the signature of the
// transaction the relayer submitted.
func (c *Client) Withdraw(ctx context.Context, wr WithdrawRequest) (types.Signature, error) {
	body, err := json.Marshal(wr)
	if err != nil {
		return types.Signature{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+WithdrawEndpoint, bytes.NewReader(body))
	if err != nil {
		return types.Signature{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debugw("relayer withdraw", "relayer", c.baseURL, "commitment", wr.Commitment, "recipient", wr.Recipient)

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Signature{}, fmt.Errorf("withdrawal failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return types.Signature{}, fmt.Errorf("withdrawal failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := defaultFailureMessage
		if gjson.ValidBytes(data) {
			if m := gjson.GetBytes(data, "message").String(); m != "" {
				msg = m
			}
		}
		log.Warnw("relayer rejected withdrawal", "status", resp.StatusCode, "message", msg)
		return types.Signature{}, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	str := gjson.GetBytes(data, "signature").String()
	if str == "" {
		return types.Signature{}, ErrNoSignature
	}
	sig, err := types.NewSignatureFromString(str)
	if err != nil {
		return types.Signature{}, fmt.Errorf("relayer returned bad signature: %w", err)
	}
	return sig, nil
}
