package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salsabil-210/comhabits/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", "chave_curta")
		assert.ErrorIs(t, config.InitCrypto(), config.ErrInvalidCryptoKey)
	})

	t.Run("ValidKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", testKey)
		require.NoError(t, config.InitCrypto())
		assert.True(t, config.CryptoReady())
	})
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	require.NoError(t, config.InitCrypto())

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := "ya29.google-access-token"

		ciphertext, err := config.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := config.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)

		ciphertext2, err := config.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, ciphertext, ciphertext2, "nonce must make ciphertexts differ")
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		require.NoError(t, err)
		decrypted, err := config.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "", decrypted)
	})

	t.Run("ShortCiphertext", func(t *testing.T) {
		_, err := config.Decrypt("AAAA")
		assert.ErrorIs(t, err, config.ErrCiphertextShort)
	})
}
