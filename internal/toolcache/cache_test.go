package toolcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRequiresRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestAddThenFind(t *testing.T) {
	root := t.TempDir()
	cache, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "typst"), "#!/bin/sh\necho typst\n")
	writeFile(t, filepath.Join(src, "LICENSE"), "license text")

	dir, err := cache.Add(src, "typst", "0.12.0", "amd64")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	want := filepath.Join(root, "typst", "0.12.0", "amd64")
	if dir != want {
		t.Errorf("cache path = %q, want %q", dir, want)
	}

	// Files moved into place.
	if _, err := os.Stat(filepath.Join(dir, "typst")); err != nil {
		t.Errorf("binary missing from cache entry: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "LICENSE")); err != nil {
		t.Errorf("support file missing from cache entry: %v", err)
	}

	found, ok := cache.Find("typst", "0.12.0", "amd64")
	if !ok {
		t.Fatal("Find missed a registered entry")
	}
	if found != dir {
		t.Errorf("Find = %q, want %q", found, dir)
	}
}

func TestFindMissesAbsentEntry(t *testing.T) {
	cache, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := cache.Find("typst", "0.12.0", "amd64"); ok {
		t.Fatal("Find reported a hit on an empty cache")
	}
}

func TestFindMissesEntryWithoutMarker(t *testing.T) {
	root := t.TempDir()
	cache, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate a crashed job: directory present, marker absent.
	partial := filepath.Join(root, "typst", "0.12.0", "amd64")
	if err := os.MkdirAll(partial, 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	writeFile(t, filepath.Join(partial, "typst"), "partial")

	if _, ok := cache.Find("typst", "0.12.0", "amd64"); ok {
		t.Fatal("Find reported a hit on an incomplete entry")
	}
}

func TestAddReplacesPartialEntry(t *testing.T) {
	root := t.TempDir()
	cache, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	partial := filepath.Join(root, "typst", "0.12.0", "amd64")
	if err := os.MkdirAll(partial, 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	writeFile(t, filepath.Join(partial, "stale"), "stale")

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "typst"), "fresh")

	dir, err := cache.Add(src, "typst", "0.12.0", "amd64")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "stale")); !os.IsNotExist(err) {
		t.Error("stale file survived re-registration")
	}
	if _, err := os.Stat(filepath.Join(dir, "typst")); err != nil {
		t.Errorf("fresh binary missing: %v", err)
	}
}

func TestEntriesAreKeyedByVersion(t *testing.T) {
	cache, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "typst"), "bin")
	if _, err := cache.Add(src, "typst", "0.11.0", "amd64"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, ok := cache.Find("typst", "0.12.0", "amd64"); ok {
		t.Error("hit on a different version")
	}
	if _, ok := cache.Find("typst", "0.11.0", "arm64"); ok {
		t.Error("hit on a different architecture")
	}
	if _, ok := cache.Find("typst", "0.11.0", "amd64"); !ok {
		t.Error("miss on the registered key")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
