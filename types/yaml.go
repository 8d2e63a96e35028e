package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fork versions and domain types appear in config files as 0x-prefixed
// hex, matching the upstream YAML config format.

func (v Version) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("0x%x", v[:]), nil
}

func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	b, err := bytesFromHex(node.Value, 4)
	if err != nil {
		return fmt.Errorf("fork version: %w", err)
	}
	copy(v[:], b)
	return nil
}

func (d DomainType) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("0x%x", d[:]), nil
}

func (d *DomainType) UnmarshalYAML(node *yaml.Node) error {
	b, err := bytesFromHex(node.Value, 4)
	if err != nil {
		return fmt.Errorf("domain type: %w", err)
	}
	copy(d[:], b)
	return nil
}
