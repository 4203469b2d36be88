// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/xorax-labs/xorax-go/repo"
	"go.uber.org/zap"
)

func TestSetupLoggingWritesFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, setupLogging(dir, "INFO"))
	defer zap.ReplaceGlobals(zap.NewNop())

	log.Infow("Deposit sent", "commitment", "fdeab9ac", "amount", 250)
	log.Debugw("Sending deposit", "commitment", "fdeab9ac")

	b, err := os.ReadFile(filepath.Join(dir, repo.DefaultLogFilename))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)

	entry := gjson.Parse(lines[0])
	assert.Equal(t, "Deposit sent", entry.Get("msg").String())
	assert.Equal(t, "info", entry.Get("level").String())
	assert.Equal(t, "fdeab9ac", entry.Get("commitment").String())
	assert.Equal(t, int64(250), entry.Get("amount").Int())
}

func TestSetupLoggingBadLevel(t *testing.T) {
	assert.Error(t, setupLogging("", "verbose"))
}
