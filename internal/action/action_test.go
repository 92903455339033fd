package action

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutputAppendsToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "output")
	env := New(outputFile, "", nil)

	if err := env.SetOutput("version", "0.12.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.SetOutput("cache-hit", "false"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}

	want := "version=0.12.0\ncache-hit=false\n"
	if string(content) != want {
		t.Errorf("output file content:\ngot:  %q\nwant: %q", string(content), want)
	}
}

func TestSetOutputPreservesExistingEntries(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(outputFile, []byte("other=1\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	env := New(outputFile, "", nil)
	if err := env.SetOutput("version", "0.12.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if string(content) != "other=1\nversion=0.12.0\n" {
		t.Errorf("existing entries clobbered: %q", string(content))
	}
}

func TestSetOutputRejectsMultilineValue(t *testing.T) {
	env := New(filepath.Join(t.TempDir(), "output"), "", nil)
	if err := env.SetOutput("version", "0.12.0\nextra=oops"); err == nil {
		t.Fatal("expected error for multiline value")
	}
}

func TestSetOutputWithoutFileIsNoop(t *testing.T) {
	env := New("", "", nil)
	if err := env.SetOutput("version", "0.12.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddPath(t *testing.T) {
	pathFile := filepath.Join(t.TempDir(), "path")
	dir := filepath.Join(t.TempDir(), "toolbin")

	t.Setenv("PATH", "/usr/bin")

	env := New("", pathFile, nil)
	if err := env.AddPath(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := os.Getenv("PATH")
	if !strings.HasPrefix(got, dir+string(os.PathListSeparator)) {
		t.Errorf("PATH = %q, want prefix %q", got, dir)
	}

	content, err := os.ReadFile(pathFile)
	if err != nil {
		t.Fatalf("read path file: %v", err)
	}
	if string(content) != dir+"\n" {
		t.Errorf("path file content = %q, want %q", string(content), dir+"\n")
	}
}

func TestAddPathWithoutFileUpdatesProcessOnly(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", "/usr/bin")

	env := New("", "", nil)
	if err := env.AddPath(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(os.Getenv("PATH"), dir) {
		t.Errorf("process PATH not updated: %q", os.Getenv("PATH"))
	}
}
