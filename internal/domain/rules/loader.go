package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type additiveDoc struct {
	Categories []CategoryRules `yaml:"categories"`
}

type multiplierDoc struct {
	FallbackBase float64              `yaml:"fallback_base"`
	Categories   []MultiplierCategory `yaml:"categories"`
}

// ParseAdditive decodes an additive table from YAML. Unknown keys are rejected.
func ParseAdditive(data []byte) (*Table, error) {
	var doc additiveDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, err
	}
	return NewTable(doc.Categories)
}

// ParseMultiplier decodes a multiplier table from YAML. A missing
// fallback_base defaults to DefaultFallbackBase.
func ParseMultiplier(data []byte) (*MultiplierTable, error) {
	doc := multiplierDoc{FallbackBase: DefaultFallbackBase}
	if err := decodeStrict(data, &doc); err != nil {
		return nil, err
	}
	return NewMultiplierTable(doc.FallbackBase, doc.Categories)
}

// LoadAdditiveFile reads an additive table from a YAML file.
func LoadAdditiveFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRules, err)
	}
	return ParseAdditive(data)
}

// LoadMultiplierFile reads a multiplier table from a YAML file.
func LoadMultiplierFile(path string) (*MultiplierTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRules, err)
	}
	return ParseMultiplier(data)
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrLoadRules, err)
	}
	return nil
}
