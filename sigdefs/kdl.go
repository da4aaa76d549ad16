package sigdefs

import (
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/corvid-labs/sigscan/sigerr"
)

// Config is sigscan's project-level configuration, loaded from a
// .sigscan.kdl file in the project root.
type Config struct {
	DefinitionsPath string
	Codepage        string
	WatchDebounceMs int
	Include         []string
	Exclude         []string
}

// LoadKDL loads .sigscan.kdl from projectRoot. It returns (nil, nil) if no
// such file exists, so callers fall back to command-line-supplied defaults.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".sigscan.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"failed to read .sigscan.kdl")
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	if cfg.DefinitionsPath != "" && !filepath.IsAbs(cfg.DefinitionsPath) {
		cfg.DefinitionsPath = filepath.Join(projectRoot, cfg.DefinitionsPath)
	}

	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := &Config{
		DefinitionsPath: "signatures.kdl.json",
		WatchDebounceMs: 100,
	}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
			"failed to parse .sigscan.kdl")
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "definitions":
			if s, ok := firstStringArg(n); ok {
				cfg.DefinitionsPath = s
			}
		case "codepage":
			if s, ok := firstStringArg(n); ok {
				cfg.Codepage = s
			}
		case "watch":
			for _, cn := range n.Children {
				if nodeName(cn) == "debounce_ms" {
					if v, ok := firstIntArg(cn); ok {
						cfg.WatchDebounceMs = v
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
