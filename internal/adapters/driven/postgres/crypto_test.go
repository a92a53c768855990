package postgres

import (
	"encoding/base64"
	"testing"
)

func TestSecretEncryptor_RoundTrip(t *testing.T) {
	key := []byte("01234567890123456789012345678901")

	encryptor, err := NewSecretEncryptor(key)
	if err != nil {
		t.Fatalf("NewSecretEncryptor: %v", err)
	}

	original := "sk-test-key"

	sealed, err := encryptor.Seal(original)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if sealed == original {
		t.Error("expected sealed form to differ from plaintext")
	}

	// Verify sealed format
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatalf("sealed form is not base64: %v", err)
	}
	if len(blob) < 1+nonceSize {
		t.Fatalf("blob too short: %d bytes", len(blob))
	}
	if blob[0] != secretVersion {
		t.Errorf("version byte: got %d, want %d", blob[0], secretVersion)
	}

	opened, err := encryptor.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened != original {
		t.Errorf("got %q, want %q", opened, original)
	}
}

func TestSecretEncryptor_EmptySecret(t *testing.T) {
	key := []byte("01234567890123456789012345678901")
	encryptor, _ := NewSecretEncryptor(key)

	sealed, err := encryptor.Seal("")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if sealed != "" {
		t.Errorf("expected empty sealed form, got %q", sealed)
	}

	opened, err := encryptor.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened != "" {
		t.Errorf("expected empty plaintext, got %q", opened)
	}
}

func TestSecretEncryptor_InvalidKeySize(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
	}{
		{"too short", 16},
		{"too long", 64},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, tt.keySize)
			_, err := NewSecretEncryptor(key)
			if err == nil {
				t.Error("expected error for invalid key size")
			}
		})
	}
}

func TestSecretEncryptor_OpenInvalidInput(t *testing.T) {
	key := []byte("01234567890123456789012345678901")
	encryptor, _ := NewSecretEncryptor(key)

	tests := []struct {
		name   string
		sealed string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too short", base64.StdEncoding.EncodeToString([]byte{0x01, 0x02})},
		{"wrong version", base64.StdEncoding.EncodeToString(append([]byte{0x99}, make([]byte, 100)...))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := encryptor.Open(tt.sealed); err == nil {
				t.Error("expected error for invalid sealed secret")
			}
		})
	}
}

func TestSecretEncryptor_WrongKey(t *testing.T) {
	key1 := []byte("01234567890123456789012345678901")
	key2 := []byte("10987654321098765432109876543210")

	enc1, _ := NewSecretEncryptor(key1)
	enc2, _ := NewSecretEncryptor(key2)

	sealed, err := enc1.Seal("secret data")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := enc2.Open(sealed); err == nil {
		t.Error("expected error when opening with wrong key")
	}
}

func TestSecretEncryptor_UniqueNonce(t *testing.T) {
	key := []byte("01234567890123456789012345678901")
	encryptor, _ := NewSecretEncryptor(key)

	// Sealing the same value repeatedly must produce distinct nonces
	nonces := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sealed, err := encryptor.Seal("same value")
		if err != nil {
			t.Fatalf("Seal %d: %v", i, err)
		}
		blob, err := base64.StdEncoding.DecodeString(sealed)
		if err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		nonce := string(blob[1 : 1+nonceSize])
		if nonces[nonce] {
			t.Errorf("duplicate nonce at iteration %d", i)
		}
		nonces[nonce] = true
	}
}
