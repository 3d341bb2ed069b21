package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/variant-resolver/internal/domain/variant"
)

// ApiLevel is an Android API level written either as a number or as a platform codename.
type ApiLevel int

// UnmarshalYAML accepts `33` as well as `Tiramisu`.
func (l *ApiLevel) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: api level must be a scalar", value.Line)
	}

	level, err := domain.ParseApiLevel(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*l = ApiLevel(level)

	return nil
}
