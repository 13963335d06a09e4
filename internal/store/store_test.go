package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SetGet(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, ok := s.Get("apiKey"); ok {
		t.Error("Expected absent key in fresh store")
	}

	if err := s.Set("apiKey", "sk-test"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	v, ok := s.Get("apiKey")
	if !ok {
		t.Fatal("Expected key to be present after Set")
	}
	if v != "sk-test" {
		t.Errorf("Expected 'sk-test', got '%s'", v)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Set("clonedVoiceId", "abc123"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	// Reopen from disk
	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() after write failed: %v", err)
	}

	v, ok := s2.Get("clonedVoiceId")
	if !ok {
		t.Fatal("Expected key to survive reopen")
	}
	if v != "abc123" {
		t.Errorf("Expected 'abc123', got '%s'", v)
	}
}

func TestStore_Overwrite(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Set("apiKey", "old"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Set("apiKey", "new"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	v, _ := s.Get("apiKey")
	if v != "new" {
		t.Errorf("Expected overwritten value 'new', got '%s'", v)
	}
}

func TestStore_Delete(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Set("apiKey", "sk-test"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Delete("apiKey"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, ok := s.Get("apiKey"); ok {
		t.Error("Expected key to be absent after Delete")
	}
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Set("apiKey", "sk-test"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "state.json.tmp")); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away after flush")
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("not json"), 0o600); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	if _, err := Open(dir); err == nil {
		t.Error("Expected error opening corrupt state file")
	}
}
