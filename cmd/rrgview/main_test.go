package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWatchlistFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	content := "spy\n\n# sector funds\nxlk\nxle\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	syms, err := readWatchlistFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"spy", "xlk", "xle"}
	if len(syms) != len(want) {
		t.Fatalf("expected %d symbols, got %v", len(want), syms)
	}
	for i, w := range want {
		if syms[i] != w {
			t.Errorf("index %d: expected %q, got %q", i, w, syms[i])
		}
	}
}

func TestReadWatchlistFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	if err := os.WriteFile(path, []byte("# only comments\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := readWatchlistFile(path); err == nil {
		t.Error("expected error for a watchlist with no symbols")
	}
}

func TestReadWatchlistFile_Missing(t *testing.T) {
	if _, err := readWatchlistFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for a missing file")
	}
}
