package sigcli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/corvid-labs/sigscan/sigdefs"
	"github.com/corvid-labs/sigscan/sigerr"
	"github.com/corvid-labs/sigscan/sigio"
	"github.com/corvid-labs/sigscan/sigtree"
)

// fileResult is one file's scan outcome, concurrency-safe to collect because
// each goroutine owns a distinct slot.
type fileResult struct {
	Path    string          `json:"path"`
	Digest  string          `json:"digest"`
	Matches []sigtree.Match `json:"matches"`
	Err     string          `json:"error,omitempty"`
}

func scanCommand(c *cli.Context) error {
	defsPath := c.String("defs")
	if defsPath == "" {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"scan: --defs is required")
	}
	defs, err := sigdefs.LoadFile(defsPath)
	if err != nil {
		return err
	}

	scanner := sigtree.NewScanner()
	if err := sigdefs.AddTo(scanner, defs); err != nil {
		return err
	}
	if err := scanner.Prepare(); err != nil {
		return err
	}

	var paths []string
	for _, pattern := range c.Args().Slice() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return sigerr.Wrap(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue}, err,
				"scan: bad glob pattern %q", pattern)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"scan: no files matched the given patterns")
	}

	results := make([]fileResult, len(paths))
	var group errgroup.Group
	if n := c.Int("parallel"); n > 0 {
		group.SetLimit(n)
	}
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			results[i] = scanOneFile(scanner, path)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	out := c.App.Writer
	if c.Bool("json") {
		return json.NewEncoder(out).Encode(results)
	}
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(out, "%s: error: %s\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s (%s): %d match(es)\n", r.Path, r.Digest, len(r.Matches))
		for _, m := range r.Matches {
			fmt.Fprintf(out, "  %s @ %d\n", m.Identifier, m.Offset)
		}
	}
	return nil
}

func scanOneFile(scanner *sigtree.Scanner, path string) fileResult {
	result := fileResult{Path: path}

	digest, err := fileDigest(path)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	result.Digest = fmt.Sprintf("%016x", digest)

	src, err := sigio.Open(path)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer src.Close()

	state := sigtree.NewScanState(scanner)
	if err := scanner.ScanFileIO(state, src, nil); err != nil {
		result.Err = err.Error()
		return result
	}
	result.Matches = state.Matches()
	return result
}
