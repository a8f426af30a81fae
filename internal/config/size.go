package config

import (
	"fmt"
	"strconv"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

// Size is a byte count. In YAML it may be written as a plain integer or as a
// string with a unit suffix understood by echo ("512", "4K", "50MB").
type Size int64

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a scalar", node.Line)
	}
	if n, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
		*s = Size(n)
		return nil
	}
	n, err := bytes.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid size %q: %w", node.Line, node.Value, err)
	}
	*s = Size(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Size) MarshalYAML() (interface{}, error) {
	return int64(s), nil
}

// String returns the size as a plain byte count, which echo's limit parser accepts.
func (s Size) String() string {
	return strconv.FormatInt(int64(s), 10)
}
