package journal

import (
	"github.com/jn-tool/jn/pkg/crypto"
)

// Codec is the reversible transform between entry plaintext and its on-disk
// form. Exactly two implementations exist: the identity transform returned
// by Plain and the AES-256-GCM transform returned by Encrypted. The choice
// is made once per operation and carried explicitly; nothing is inferred
// from file content.
type Codec interface {
	// Encode transforms plaintext to the bytes written to disk.
	Encode(plaintext []byte) ([]byte, error)

	// Decode transforms bytes read from disk back to plaintext. For the
	// encrypted variant it fails with crypto.ErrDecryptionFailed on a
	// wrong key or tampered container and crypto.ErrContainerTooShort on
	// a truncated one.
	Decode(data []byte) ([]byte, error)

	// Encrypted reports whether this codec produces encrypted containers,
	// which selects the on-disk name marker.
	Encrypted() bool
}

// Plain returns the identity codec for unencrypted entries.
func Plain() Codec {
	return plainCodec{}
}

// Encrypted returns the AEAD codec for the given 32-byte key. The key is
// used as given; the codec does not copy it, so the caller wipes it after
// the operation completes.
func Encrypted(key []byte) (Codec, error) {
	if len(key) != crypto.KeyLength {
		return nil, crypto.ErrInvalidKeyLength
	}
	return aeadCodec{key: key}, nil
}

type plainCodec struct{}

func (plainCodec) Encode(plaintext []byte) ([]byte, error) { return plaintext, nil }
func (plainCodec) Decode(data []byte) ([]byte, error)      { return data, nil }
func (plainCodec) Encrypted() bool                         { return false }

type aeadCodec struct {
	key []byte
}

func (c aeadCodec) Encode(plaintext []byte) ([]byte, error) {
	return crypto.Encrypt(c.key, plaintext)
}

func (c aeadCodec) Decode(data []byte) ([]byte, error) {
	return crypto.Decrypt(c.key, data)
}

func (c aeadCodec) Encrypted() bool { return true }
