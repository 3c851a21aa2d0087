package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.HasToken() {
		t.Fatal("fresh store must be empty")
	}

	if err := s.SetToken("bearer-abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if s.Token() != "bearer-abc" {
		t.Fatalf("token = %q", s.Token())
	}

	// a second Open simulates a process restart
	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s2.Token() != "bearer-abc" {
		t.Fatalf("token after reopen = %q", s2.Token())
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetToken("bearer-abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.HasToken() {
		t.Fatal("token survived Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, fileName)); !os.IsNotExist(err) {
		t.Fatalf("session file still present: %v", err)
	}

	// clearing an already-empty store is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCorruptFileYieldsEmptySession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte("{garbage"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.HasToken() {
		t.Fatal("corrupt file must not produce a token")
	}
}

func TestTokenNotStoredInPlainText(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetToken("super-secret-token"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty session file")
	}
	if bytes.Contains(data, []byte("super-secret-token")) {
		t.Fatal("token written in plain text")
	}
}
