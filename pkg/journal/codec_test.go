package journal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jn-tool/jn/pkg/crypto"
)

// TestPlainCodecIdentity verifies the plain codec is the identity on bytes
func TestPlainCodecIdentity(t *testing.T) {
	codec := Plain()
	if codec.Encrypted() {
		t.Error("Plain().Encrypted() = true, want false")
	}

	data := []byte("as-is")
	encoded, err := codec.Encode(data)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(encoded, data) {
		t.Errorf("Encode() = %q, want %q", encoded, data)
	}

	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("Decode() = %q, want %q", decoded, data)
	}
}

// TestEncryptedCodecKeyLength verifies key validation happens at
// construction, not first use
func TestEncryptedCodecKeyLength(t *testing.T) {
	if _, err := Encrypted(make([]byte, 16)); !errors.Is(err, crypto.ErrInvalidKeyLength) {
		t.Errorf("Encrypted() with short key error = %v, want %v", err, crypto.ErrInvalidKeyLength)
	}
	if _, err := Encrypted(nil); !errors.Is(err, crypto.ErrInvalidKeyLength) {
		t.Errorf("Encrypted(nil) error = %v, want %v", err, crypto.ErrInvalidKeyLength)
	}

	codec, err := Encrypted(make([]byte, crypto.KeyLength))
	if err != nil {
		t.Fatalf("Encrypted() error = %v", err)
	}
	if !codec.Encrypted() {
		t.Error("Encrypted codec reports Encrypted() = false")
	}
}

// TestCodecRoundTrip verifies encode/decode through the codec layer
func TestCodecRoundTrip(t *testing.T) {
	key := make([]byte, crypto.KeyLength)
	for i := range key {
		key[i] = byte(i)
	}
	codec, err := Encrypted(key)
	if err != nil {
		t.Fatalf("Encrypted() error = %v", err)
	}

	plaintext := []byte("through the codec")
	container, err := codec.Encode(plaintext)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := codec.Decode(container)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Decode() = %q, want %q", got, plaintext)
	}
}
