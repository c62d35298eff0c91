package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"os"
)

var key []byte

var (
	ErrInvalidCryptoKey = errors.New("CRYPTO_KEY must be 32 bytes")
	ErrCryptoNotReady   = errors.New("crypto key not initialized")
	ErrCiphertextShort  = errors.New("ciphertext too short")
)

func InitCrypto() error {
	k := os.Getenv("CRYPTO_KEY")
	if len(k) != 32 {
		return ErrInvalidCryptoKey
	}
	key = []byte(k)
	return nil
}

func CryptoReady() bool {
	return len(key) == 32
}

func newAEAD() (cipher.AEAD, error) {
	if !CryptoReady() {
		return nil, ErrCryptoNotReady
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func Encrypt(text string) (string, error) {
	aead, err := newAEAD()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(text), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func Decrypt(encoded string) (string, error) {
	aead, err := newAEAD()
	if err != nil {
		return "", err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrCiphertextShort
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
