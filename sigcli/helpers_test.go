package sigcli

import (
	"testing"

	"github.com/corvid-labs/sigscan/sigtree"
)

// newScannerForTest builds a small prepared Scanner shared by sigcli's
// tests: "magic" at start offset 0 and "needle" unbound.
func newScannerForTest(t *testing.T) *sigtree.Scanner {
	t.Helper()
	s := sigtree.NewScanner()
	if err := s.AddSignature("magic", []byte("MAG"), 0, sigtree.AnchorStartRelative); err != nil {
		t.Fatal(err)
	}
	if err := s.AddSignature("needle", []byte("NEEDLE"), 0, sigtree.AnchorUnbound); err != nil {
		t.Fatal(err)
	}
	if err := s.Prepare(); err != nil {
		t.Fatal(err)
	}
	return s
}
