package sigdefs

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/corvid-labs/sigscan/sigerr"
)

// LoadPlainText parses the line-oriented definitions format:
//
//	# comment
//	id	offset	anchor	hex-pattern
//
// Fields are tab-separated; blank lines and lines starting with # are
// skipped. anchor is one of "start", "end", "unbound".
func LoadPlainText(r io.Reader) ([]Definition, error) {
	scanner := bufio.NewScanner(r)
	var defs []Definition
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, sigerr.New(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData},
				"line %d: expected 4 tab-separated fields, got %d", lineNo, len(fields))
		}

		id := strings.TrimSpace(fields[0])
		offset, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"line %d: invalid offset %q", lineNo, fields[1])
		}
		anchor, err := parseAnchor(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"line %d", lineNo)
		}
		pattern, err := hex.DecodeString(strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"line %d: invalid hex pattern %q", lineNo, fields[3])
		}

		defs = append(defs, Definition{Identifier: id, Pattern: pattern, Offset: offset, Anchor: anchor})
	}
	if err := scanner.Err(); err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"reading plain-text definitions")
	}
	return defs, nil
}
