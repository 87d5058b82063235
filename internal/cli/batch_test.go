package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "a.layout.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Directory argument: *.json minus layout outputs, sorted.
	inputs, err := collectInputs([]string{dir})
	if err != nil {
		t.Fatalf("collectInputs error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}
	if !reflect.DeepEqual(inputs, want) {
		t.Errorf("inputs = %v, want %v", inputs, want)
	}

	// Explicit file arguments pass through, even layout-named ones.
	single := filepath.Join(dir, "a.layout.json")
	inputs, err = collectInputs([]string{single})
	if err != nil {
		t.Fatalf("collectInputs error: %v", err)
	}
	if !reflect.DeepEqual(inputs, []string{single}) {
		t.Errorf("inputs = %v, want [%s]", inputs, single)
	}

	// Missing arguments error.
	if _, err := collectInputs([]string{filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("missing path should error")
	}
}
