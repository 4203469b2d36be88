// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptWithPassphrase(t *testing.T) {
	plaintext := []byte("the secret and nullifier")

	ciphertext, err := EncryptWithPassphrase(SystemSource, "hunter2", plaintext)
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), string(plaintext))

	decrypted, err := DecryptWithPassphrase("hunter2", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	_, err = DecryptWithPassphrase("hunter3", ciphertext)
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = DecryptWithPassphrase("hunter2", ciphertext[:10])
	assert.ErrorIs(t, err, ErrCiphertextSize)
}
