package query

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a static query list from path. YAML files (.yaml, .yml) may
// hold either a plain sequence of strings or a mapping with a "queries" key.
// Any other file is read as one query per line; blank lines and lines
// starting with '#' are ignored. Duplicates are dropped.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse queries %s: %w", path, err)
		}
	default:
		raw = parseLines(data)
	}
	return NewList(dedupe(raw)), nil
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := root.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	case yaml.MappingNode:
		var doc struct {
			Queries []string `yaml:"queries"`
		}
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Queries, nil
	default:
		return nil, fmt.Errorf("expected a list of queries")
	}
}

func parseLines(data []byte) []string {
	var items []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	return items
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
