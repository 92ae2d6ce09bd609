// Package crypto provides the cryptographic primitives for jn.
//
// This package implements AES-256-GCM authenticated encryption and Argon2id
// key derivation. Encrypted journal entries are stored as a single container
// of the form
//
//	nonce || ciphertext+tag
//
// with a fresh random 12-byte nonce generated for every encryption, including
// overwrites of the same entry. The GCM authentication tag provides tamper
// detection: a wrong key, a flipped byte, or a truncated file all surface as
// ErrDecryptionFailed rather than garbage plaintext.
//
// # Example Usage
//
//	key, err := crypto.DeriveKey([]byte("passphrase"), salt)
//	container, err := crypto.Encrypt(key, plaintext)
//	plaintext, err := crypto.Decrypt(key, container)
//	crypto.SecureWipe(key)
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters following OWASP recommendations.
const (
	// Argon2Memory is the memory cost in KiB (64MB).
	Argon2Memory = 64 * 1024

	// Argon2Time is the number of iterations.
	Argon2Time = 3

	// Argon2Threads is the degree of parallelism.
	Argon2Threads = 4

	// KeyLength is the length of encryption keys in bytes (256 bits).
	KeyLength = 32

	// NonceLength is the length of GCM nonces in bytes (96 bits).
	NonceLength = 12

	// TagLength is the length of the GCM authentication tag in bytes.
	TagLength = 16

	// MinContainerLength is the smallest valid encrypted container:
	// a nonce plus the tag of an empty plaintext.
	MinContainerLength = NonceLength + TagLength

	// MinSaltLength is the minimum accepted salt length in bytes.
	MinSaltLength = 16
)

// Sentinel errors returned by crypto functions.
var (
	// ErrEmptyPassphrase indicates key derivation was attempted with an
	// empty passphrase.
	ErrEmptyPassphrase = errors.New("crypto: passphrase must not be empty")

	// ErrInvalidSaltLength indicates the salt is shorter than 16 bytes.
	ErrInvalidSaltLength = errors.New("crypto: salt must be at least 16 bytes")

	// ErrInvalidKeyLength indicates the key is not 32 bytes.
	ErrInvalidKeyLength = errors.New("crypto: invalid key length, must be 32 bytes")

	// ErrContainerTooShort indicates the container is shorter than a
	// nonce plus the GCM tag and cannot possibly be decrypted.
	ErrContainerTooShort = errors.New("crypto: container too short")

	// ErrDecryptionFailed indicates decryption or authentication tag
	// verification failed: wrong key, or a tampered/corrupted container.
	ErrDecryptionFailed = errors.New("crypto: decryption failed, authentication tag verification failed")
)

// DeriveKey derives a 256-bit encryption key from a passphrase using Argon2id.
//
// Derivation is deterministic: the same passphrase and salt always yield the
// same key. The salt is not secret; it only has to be stable per journal
// root. Returns ErrEmptyPassphrase for an empty passphrase, before touching
// any other input, and ErrInvalidSaltLength for a salt shorter than 16 bytes.
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	if len(salt) < MinSaltLength {
		return nil, ErrInvalidSaltLength
	}
	return argon2.IDKey(passphrase, salt, Argon2Time, Argon2Memory, Argon2Threads, KeyLength), nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns the container
// nonce || ciphertext+tag.
//
// A cryptographically secure random nonce is generated for every call, so
// encrypting identical plaintext twice under the same key yields different
// containers.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to create GCM: %w", err)
	}

	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("crypto: failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext+tag to the nonce, producing the container
	// layout in a single allocation.
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt decrypts a container produced by Encrypt.
//
// The leading nonce is split off and the authentication tag is verified
// before any plaintext is returned. Returns ErrContainerTooShort for a
// container smaller than nonce+tag and ErrDecryptionFailed when tag
// verification fails.
func Decrypt(key, container []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidKeyLength
	}

	if len(container) < MinContainerLength {
		return nil, ErrContainerTooShort
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to create GCM: %w", err)
	}

	nonce, ciphertext := container[:NonceLength], container[NonceLength:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// SecureWipe overwrites a byte slice with zeros in a way that prevents
// compiler optimization from removing the operation.
// This is critical for securely destroying derived keys and passphrases.
func SecureWipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	// runtime.KeepAlive ensures the write operations are not optimized away
	// by the compiler since b is still "in use" after the loop.
	runtime.KeepAlive(b)
}
