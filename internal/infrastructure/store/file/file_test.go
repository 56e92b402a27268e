package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestStoreRoundTripAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := New(path, "", zerolog.Nop())
	s.Set("accessToken", "AT1")
	s.Set("refreshToken", "RT1")

	// A second instance over the same path sees what the first wrote.
	reopened := New(path, "", zerolog.Nop())
	if v, ok := reopened.Get("accessToken"); !ok || v != "AT1" {
		t.Fatalf("accessToken = %q, %t", v, ok)
	}
	if v, ok := reopened.Get("refreshToken"); !ok || v != "RT1" {
		t.Fatalf("refreshToken = %q, %t", v, ok)
	}
}

func TestStoreDeleteAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path, "", zerolog.Nop())
	s.Set("accessToken", "AT1")
	s.Set("user", `{"id":"u1"}`)

	s.Delete("accessToken")
	if _, ok := s.Get("accessToken"); ok {
		t.Fatalf("deleted key still present")
	}
	if _, ok := s.Get("user"); !ok {
		t.Fatalf("delete touched an unrelated key")
	}

	s.Clear()
	if _, ok := s.Get("user"); ok {
		t.Fatalf("clear left data behind")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("clear must remove the file, stat err %v", err)
	}
}

func TestStoreMissingFileReadsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.json"), "", zerolog.Nop())
	if _, ok := s.Get("accessToken"); ok {
		t.Fatalf("missing file must read as empty")
	}
}

func TestStoreFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path, "", zerolog.Nop())
	s.Set("accessToken", "AT1")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("file mode = %o, want 600", perm)
	}
}

func TestStoreEncryptedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := New(path, "hunter2", zerolog.Nop())
	s.Set("accessToken", "AT1")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if strings.Contains(string(raw), "AT1") {
		t.Fatalf("token stored in the clear")
	}

	reopened := New(path, "hunter2", zerolog.Nop())
	if v, ok := reopened.Get("accessToken"); !ok || v != "AT1" {
		t.Fatalf("accessToken = %q, %t", v, ok)
	}
}

func TestStoreWrongPassphraseReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	New(path, "hunter2", zerolog.Nop()).Set("accessToken", "AT1")

	s := New(path, "wrong", zerolog.Nop())
	if _, ok := s.Get("accessToken"); ok {
		t.Fatalf("wrong passphrase must degrade to an empty store")
	}
}

func TestStoreCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s := New(path, "", zerolog.Nop())
	if _, ok := s.Get("accessToken"); ok {
		t.Fatalf("corrupt file must read as empty")
	}

	// Writes over a corrupt file start from scratch instead of failing.
	s.Set("accessToken", "AT1")
	if v, ok := s.Get("accessToken"); !ok || v != "AT1" {
		t.Fatalf("accessToken after rewrite = %q, %t", v, ok)
	}
}
