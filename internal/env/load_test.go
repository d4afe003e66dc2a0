package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_SetsUnsetKeysOnly(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	content := "# studio\nSTUDIO_TEST_ADDR=\":9090\"\nSTUDIO_TEST_ROOT=public\n"
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STUDIO_TEST_ROOT", "kept")
	os.Unsetenv("STUDIO_TEST_ADDR")
	t.Cleanup(func() { os.Unsetenv("STUDIO_TEST_ADDR") })

	if err := Load(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("STUDIO_TEST_ADDR"); got != ":9090" {
		t.Fatalf("STUDIO_TEST_ADDR=%q; want %q", got, ":9090")
	}
	if got := os.Getenv("STUDIO_TEST_ROOT"); got != "kept" {
		t.Fatalf("STUDIO_TEST_ROOT=%q; want %q", got, "kept")
	}
}

func TestString_Fallback(t *testing.T) {
	t.Setenv("STUDIO_TEST_BLANK", "   ")
	if got := String("STUDIO_TEST_BLANK", "x"); got != "x" {
		t.Fatalf("String(blank)=%q; want x", got)
	}
	t.Setenv("STUDIO_TEST_SET", " y ")
	if got := String("STUDIO_TEST_SET", "x"); got != "y" {
		t.Fatalf("String(set)=%q; want y", got)
	}
}
