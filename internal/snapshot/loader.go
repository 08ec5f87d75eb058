// Package snapshot reads reconciliation snapshots exported from the backend
// as JSON or YAML documents.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/segyhp/dues-engine/internal/domain"
)

// Format identifies the encoding of a snapshot document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the snapshot at path. A path of "-" reads JSON from stdin.
func Load(path string) (*domain.Snapshot, error) {
	if path == "-" {
		return Decode(os.Stdin, FormatJSON)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatOf(path))
}

// Decode reads a snapshot from r. YAML documents are converted to JSON first
// so that dates and amounts go through the same permissive decoding as JSON
// input. YAML scalars keep their source text, so an unquoted 0012 stays a
// string and an unquoted 40.50 keeps its precision.
func Decode(r io.Reader, format Format) (*domain.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if format == FormatYAML {
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snap, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if err == io.EOF {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("failed to decode snapshot YAML: %w", err)
	}

	value, err := nodeValue(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot YAML: %w", err)
	}
	if value == nil {
		return []byte("{}"), nil
	}

	out, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("snapshot YAML is not representable as JSON: %w", err)
	}
	return out, nil
}

// nodeValue converts a YAML node into JSON-ready values. Scalars other than
// null and booleans are returned as their literal text.
func nodeValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])

	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.MappingNode:
		out := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
			}
			v, err := nodeValue(value)
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return b, nil
		default:
			return n.Value, nil
		}
	}

	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}
