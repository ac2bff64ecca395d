package export

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// Protected-bundle layout inside the outer zip.
const (
	encryptedEntryName = "package.bin"
	metadataEntryName  = "metadata.json"

	// 6-byte magic header marking encrypted content.
	encryptionMagic = "CPKENC"

	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32 // AES-256
	saltLen      = 32
)

var (
	ErrInvalidArchive   = errors.New("invalid archive or missing package entry")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrPasswordRequired = errors.New("archive is encrypted, password required")
)

func deriveKey(password string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
}

// encryptPayload produces magic || salt || nonce || ciphertext.
func encryptPayload(plain []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(encryptionMagic)+saltLen+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, encryptionMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plain, nil)
	return out, nil
}

func decryptPayload(payload []byte, password string) ([]byte, error) {
	if len(payload) < len(encryptionMagic)+saltLen {
		return nil, ErrInvalidArchive
	}
	if !bytes.HasPrefix(payload, []byte(encryptionMagic)) {
		return nil, ErrInvalidArchive
	}
	payload = payload[len(encryptionMagic):]

	salt := payload[:saltLen]
	payload = payload[saltLen:]

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	if len(payload) < gcm.NonceSize() {
		return nil, ErrInvalidArchive
	}
	nonce := payload[:gcm.NonceSize()]
	plain, err := gcm.Open(nil, nonce, payload[gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrWrongPassword
	}
	return plain, nil
}
