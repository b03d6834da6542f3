package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	backends := make(map[string]Backend)
	for _, kind := range Backends() {
		b, err := Open(kind, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", kind, err)
		}
		t.Cleanup(func() { b.Close() })
		backends[kind] = b
	}
	return backends
}

func TestBackendContract(t *testing.T) {
	for kind, b := range openBackends(t) {
		t.Run(kind, func(t *testing.T) {
			if _, ok, err := b.Get("tasks"); err != nil || ok {
				t.Fatalf("Get absent: ok=%v err=%v", ok, err)
			}

			if err := b.Put("tasks", []byte("first")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := b.Put("tasks", []byte("second")); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, ok, err := b.Get("tasks")
			if err != nil || !ok {
				t.Fatalf("Get: ok=%v err=%v", ok, err)
			}
			if !bytes.Equal(got, []byte("second")) {
				t.Errorf("Get: got %q, want %q", got, "second")
			}

			if err := b.Put("archive", []byte("x")); err != nil {
				t.Fatalf("Put archive: %v", err)
			}
			keys, err := b.Keys()
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if diff := cmp.Diff([]string{"archive", "tasks"}, keys); diff != "" {
				t.Errorf("Keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBackendRejectsBadKeys(t *testing.T) {
	for kind, b := range openBackends(t) {
		t.Run(kind, func(t *testing.T) {
			for _, key := range []string{"", "  ", "a/b", `a\b`, ".."} {
				if err := b.Put(key, []byte("x")); err == nil {
					t.Errorf("Put(%q) should fail", key)
				}
				if _, _, err := b.Get(key); err == nil {
					t.Errorf("Get(%q) should fail", key)
				}
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpenDefaultsToFile(t *testing.T) {
	b, err := Open("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*FileBackend); !ok {
		t.Errorf("expected *FileBackend, got %T", b)
	}
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := b.Put("tasks", []byte("[]\n")); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"tasks.json"}, names); diff != "" {
		t.Errorf("directory contents (-want +got):\n%s", diff)
	}
}

func TestFileBackendCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Put("tasks", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); err != nil {
		t.Errorf("expected tasks.json: %v", err)
	}
}

func TestNewFileBackendEmptyDir(t *testing.T) {
	if _, err := NewFileBackend(""); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestSQLiteBackendPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Put("tasks", []byte("kept")); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, ok, err := reopened.Get("tasks")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != "kept" {
		t.Errorf("Get: got %q, want kept", got)
	}
	if reopened.Path() != path {
		t.Errorf("Path: got %q, want %q", reopened.Path(), path)
	}
}

func TestMemoryBackendCopies(t *testing.T) {
	m := NewMemoryBackend()
	value := []byte("abc")
	m.Put("k", value)
	value[0] = 'X'

	got, _, _ := m.Get("k")
	if string(got) != "abc" {
		t.Errorf("Put should copy: got %q", got)
	}
	got[0] = 'Y'
	again, _, _ := m.Get("k")
	if string(again) != "abc" {
		t.Errorf("Get should copy: got %q", again)
	}
}
