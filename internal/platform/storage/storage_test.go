package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	type payload struct {
		Name string `json:"name"`
	}
	if err := s.PutAll(map[string]any{"user": payload{Name: "Sarah"}, "token": "abc"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	var got payload
	ok, err := reopened.Get("user", &got)
	if err != nil || !ok {
		t.Fatalf("get user: ok=%v err=%v", ok, err)
	}
	if got.Name != "Sarah" {
		t.Fatalf("got %+v", got)
	}

	var token string
	ok, err = reopened.Get("token", &token)
	if err != nil || !ok || token != "abc" {
		t.Fatalf("get token: ok=%v err=%v token=%q", ok, err, token)
	}
}

func TestDeleteAllRemovesPairTogether(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.PutAll(map[string]any{"user": "u", "token": "t", "theme": "dark"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.DeleteAll("user", "token"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var v string
	if ok, _ := reopened.Get("user", &v); ok {
		t.Fatal("user key should be gone")
	}
	if ok, _ := reopened.Get("token", &v); ok {
		t.Fatal("token key should be gone")
	}
	if ok, _ := reopened.Get("theme", &v); !ok || v != "dark" {
		t.Fatalf("unrelated key lost: ok=%v v=%q", ok, v)
	}
}

func TestSealedStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.bin")
	key := strings.Repeat("ab", 32)

	s, err := OpenSealed(path, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.PutAll(map[string]any{"token": "secret-token"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if bytes.Contains(raw, []byte("secret-token")) {
		t.Fatal("sealed file leaks plaintext")
	}

	reopened, err := OpenSealed(path, key)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var token string
	if ok, err := reopened.Get("token", &token); err != nil || !ok || token != "secret-token" {
		t.Fatalf("get token: ok=%v err=%v token=%q", ok, err, token)
	}
}

func TestSealedOpenReadsPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	plain, err := Open(path)
	if err != nil {
		t.Fatalf("open plain: %v", err)
	}
	if err := plain.PutAll(map[string]any{"theme": "dark"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	sealed, err := OpenSealed(path, strings.Repeat("cd", 32))
	if err != nil {
		t.Fatalf("open sealed over plain file: %v", err)
	}
	var theme string
	if ok, err := sealed.Get("theme", &theme); err != nil || !ok || theme != "dark" {
		t.Fatalf("get theme: ok=%v err=%v theme=%q", ok, err, theme)
	}
}

func TestGetMissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var v string
	ok, err := s.Get("nope", &v)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("missing key reported present")
	}
}
