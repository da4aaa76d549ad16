package sigcli

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/corvid-labs/sigscan/sigerr"
)

// fileDigest returns the xxhash64 of a file's contents, used to tag scan
// output so repeated runs against unchanged files can be diffed cheaply
// without re-reading the full match list.
func fileDigest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.OpenFailed}, err,
			"failed to open %q for hashing", path)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"failed to hash %q", path)
	}
	return h.Sum64(), nil
}
