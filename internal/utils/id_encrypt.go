package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// IDCodec hides sequential gig ids behind an AES-CFB token.
type IDCodec struct {
	Key string
}

func (c IDCodec) Encode(id uint) (string, error) { return EncryptID(id, c.Key) }
func (c IDCodec) Decode(enc string) (uint, error) { return DecryptID(enc, c.Key) }

func EncryptID(id uint, key string) (string, error) {
	plaintext := []byte(fmt.Sprintf("%d", id))

	block, err := newBlock(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(plaintext))

	// fresh IV per token
	iv := ciphertext[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to read random iv: %w", err)
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], plaintext)

	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// DecryptID reverses EncryptID. Plain numeric ids are accepted as well.
func DecryptID(enc string, key string) (uint, error) {
	if enc == "" {
		return 0, fmt.Errorf("empty encrypted id")
	}

	ciphertext, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil || len(ciphertext) < aes.BlockSize {
		var idPlain uint
		if _, err2 := fmt.Sscanf(enc, "%d", &idPlain); err2 == nil {
			return idPlain, nil
		}
		if err != nil {
			return 0, fmt.Errorf("decode base64 failed: %w", err)
		}
		return 0, fmt.Errorf("ciphertext too short: len=%d", len(ciphertext))
	}

	block, err := newBlock(key)
	if err != nil {
		return 0, err
	}

	iv := ciphertext[:aes.BlockSize]
	body := ciphertext[aes.BlockSize:]

	plaintext := make([]byte, len(body))
	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(plaintext, body)

	var id uint
	if _, err := fmt.Sscanf(string(plaintext), "%d", &id); err != nil {
		return 0, fmt.Errorf("parse id failed: %w", err)
	}

	return id, nil
}

func newBlock(key string) (cipher.Block, error) {
	k := []byte(key)
	if len(k) != 16 && len(k) != 24 && len(k) != 32 {
		return nil, fmt.Errorf("invalid key length: %d (must be 16/24/32)", len(k))
	}
	return aes.NewCipher(k)
}
