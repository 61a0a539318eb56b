package blob

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveGeneratesUniqueNames(t *testing.T) {
	d, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	first, err := d.Save([]byte("photo-1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := d.Save([]byte("photo-2"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if first == second {
		t.Errorf("expected unique names, got %q twice", first)
	}

	data, err := os.ReadFile(filepath.Join(d.path, first))
	if err != nil {
		t.Fatalf("reading saved blob: %v", err)
	}
	if string(data) != "photo-1" {
		t.Errorf("expected 'photo-1', got %q", data)
	}
}

func TestRemoveMissingBlobIsNoop(t *testing.T) {
	d, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Remove("does-not-exist.jpg"); err != nil {
		t.Errorf("Remove: %v", err)
	}
}
