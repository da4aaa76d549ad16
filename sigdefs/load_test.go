package sigdefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corvid-labs/sigscan/sigtree"
)

func TestLoadFileDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "defs.toml")
	tomlContent := "[[signature]]\nid = \"a\"\noffset = 0\nanchor = \"start\"\npattern = \"41\"\n"
	if err := os.WriteFile(tomlPath, []byte(tomlContent), 0o600); err != nil {
		t.Fatal(err)
	}
	defs, err := LoadFile(tomlPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 1 || defs[0].Anchor != sigtree.AnchorStartRelative {
		t.Fatalf("unexpected TOML-dispatched result: %+v", defs)
	}

	jsonPath := filepath.Join(dir, "defs.json")
	jsonContent := `{"signatures":[{"id":"b","anchor":"unbound","pattern":"42"}]}`
	if err := os.WriteFile(jsonPath, []byte(jsonContent), 0o600); err != nil {
		t.Fatal(err)
	}
	defs, err = LoadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 1 || defs[0].Anchor != sigtree.AnchorUnbound {
		t.Fatalf("unexpected JSON-dispatched result: %+v", defs)
	}

	txtPath := filepath.Join(dir, "defs.txt")
	if err := os.WriteFile(txtPath, []byte("c\t0\tend\t43\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	defs, err = LoadFile(txtPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 1 || defs[0].Anchor != sigtree.AnchorEndRelative {
		t.Fatalf("unexpected plain-text-dispatched result: %+v", defs)
	}
}

func TestLoadFileRejectsMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing definitions file")
	}
}
