package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func testKey(t *testing.T) string {
	t.Helper()
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return hex.EncodeToString(raw)
}

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := NewSealer(testKey(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	plain := []byte(`{"token":"abc123"}`)
	sealed, err := s.Seal(plain)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("abc123")) {
		t.Fatal("sealed data leaks plaintext")
	}

	opened, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("got %q want %q", opened, plain)
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	a, err := NewSealer(testKey(t))
	if err != nil {
		t.Fatalf("new a: %v", err)
	}
	b, err := NewSealer(testKey(t))
	if err != nil {
		t.Fatalf("new b: %v", err)
	}

	sealed, err := a.Seal([]byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := b.Open(sealed); err == nil {
		t.Fatal("open with wrong key should fail")
	}
}

func TestEmptyKeyIsPassthrough(t *testing.T) {
	s, err := NewSealer("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Configured() {
		t.Fatal("empty key should not be configured")
	}

	plain := []byte("visible")
	sealed, err := s.Seal(plain)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !bytes.Equal(sealed, plain) {
		t.Fatalf("passthrough changed data: %q", sealed)
	}
}

func TestNewSealerRejectsShortKey(t *testing.T) {
	if _, err := NewSealer("too-short"); err == nil {
		t.Fatal("short key should be rejected")
	}
}
