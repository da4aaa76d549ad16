package sigdefs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/corvid-labs/sigscan/sigerr"
)

// LoadFile dispatches to the right format loader based on path's extension:
// .toml for TOML, .json for schema-validated JSON, anything else for the
// plain tab-separated format.
func LoadFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.OpenFailed}, err,
			"failed to open definitions file %q", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(f)
	case ".json":
		return LoadJSON(f)
	default:
		return LoadPlainText(f)
	}
}
