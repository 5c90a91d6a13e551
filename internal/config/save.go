package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/stordash/internal/errors"
)

const fileHeader = "# stordash configuration\n# See 'stordash config show' for the effective values.\n"

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write config file",
			"Check permissions on "+path)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()
	return buf.Bytes(), nil
}

// Set updates a single dotted key (e.g. "tables.sort_mode") in the config
// file at path. It preserves the existing YAML structure and comments, and
// refuses to write a change that fails validation.
func Set(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind == 0 {
		// Empty file
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid config key '%s'", key),
				"Use a dotted path like 'tables.page_size'.")
		}
	}

	node := docNode
	for _, p := range parts[:len(parts)-1] {
		next := findMapValue(node, p)
		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(p), next)
		}
		if next.Kind != yaml.MappingNode {
			return fmt.Errorf("'%s' in '%s' isn't a section", p, key)
		}
		node = next
	}

	last := parts[len(parts)-1]
	if leaf := findMapValue(node, last); leaf != nil {
		if leaf.Kind != yaml.ScalarNode {
			return fmt.Errorf("'%s' is a section, not a single value", key)
		}
		leaf.Value = value
		leaf.Tag = ""
		leaf.Style = 0
	} else {
		node.Content = append(node.Content, scalar(last), scalar(value))
	}

	// Decode the edited document over the defaults and validate before
	// touching the file.
	cfg := DefaultConfig()
	if err := root.Decode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Value '%s' doesn't fit '%s'", value, key),
			"Check the value type (durations look like '30s', booleans like 'true').")
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
