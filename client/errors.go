// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package client

import (
	"errors"
	"fmt"
)

type ErrorCode int

const (
	ErrBelowMinimum ErrorCode = iota
	ErrWalletNotConnected
	ErrDepositNotFound
	ErrNegativeDelay
	ErrInvalidCredentials
	ErrCommitmentMismatch
	ErrNoRelayer
	ErrUnexpectedOwner
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrBelowMinimum:       "ErrBelowMinimum",
	ErrWalletNotConnected: "ErrWalletNotConnected",
	ErrDepositNotFound:    "ErrDepositNotFound",
	ErrNegativeDelay:      "ErrNegativeDelay",
	ErrInvalidCredentials: "ErrInvalidCredentials",
	ErrCommitmentMismatch: "ErrCommitmentMismatch",
	ErrNoRelayer:          "ErrNoRelayer",
	ErrUnexpectedOwner:    "ErrUnexpectedOwner",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// ClientError is a request the client refused or could not complete
// before anything was sent to the network. Callers can use ErrorIs to
// check the ErrorCode.
type ClientError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human-readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e ClientError) Error() string {
	return e.Description
}

func clientError(c ErrorCode, desc string) ClientError {
	return ClientError{ErrorCode: c, Description: desc}
}

// ErrorIs reports whether err, or any error it wraps, is a ClientError
// with the given code.
func ErrorIs(err error, code ErrorCode) bool {
	var clientErr ClientError
	if errors.As(err, &clientErr) && clientErr.ErrorCode == code {
		return true
	}
	return false
}
