package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys that may appear in an overlay file.
const (
	keyOutput   = "output"
	keyLogging  = "logging"
	keyOptimize = "optimize"
	keyBatch    = "batch"
	keyStore    = "store"
	keyFactors  = "factors"
	keyImpute   = "impute"
)

// ShallowMergeYAML overlays the top-level sections found in overlayPath onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections and unknown keys are left alone.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes into a fresh value so the section is replaced, not merged.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		return replace(node, &target.Output)
	case keyLogging:
		return replace(node, &target.Logging)
	case keyOptimize:
		return replace(node, &target.Optimize)
	case keyBatch:
		return replace(node, &target.Batch)
	case keyStore:
		return replace(node, &target.Store)
	case keyFactors:
		return replace(node, &target.Factors)
	case keyImpute:
		return replace(node, &target.Impute)
	default:
		return nil
	}
}

func replace[T any](node *yaml.Node, dst *T) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}
