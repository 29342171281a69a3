package internal

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/modelgate/modelgate/schema"
	"gopkg.in/yaml.v3"
)

// TableSet is one consistent pair of weight and threshold tables.
// A loaded TableSet is never mutated; reloads swap the whole pair.
type TableSet struct {
	Weights    schema.WeightTable
	Thresholds schema.ThresholdTable
}

// tablesFile is the on-disk YAML layout for weights and thresholds.
type tablesFile struct {
	MetricWeights  map[string]float64 `yaml:"metric_weights"`
	GateThresholds map[string]float64 `yaml:"gate_thresholds"`
}

// TableHolder publishes an immutable TableSet to unboundedly many
// concurrent readers and supports an explicit validated reload.
type TableHolder struct {
	current atomic.Pointer[TableSet]
}

// NewTableHolder loads the initial table set from path, or the defaults
// when path is empty. A load failure is returned, never papered over
// with defaults, so a bad config cannot serve requests.
func NewTableHolder(path string) (*TableHolder, error) {
	h := &TableHolder{}
	if err := h.Reload(path); err != nil {
		return nil, err
	}
	return h, nil
}

// Load returns the current table set. The returned tables are shared and
// must be treated as read-only.
func (h *TableHolder) Load() *TableSet {
	return h.current.Load()
}

// Reload parses and validates the table file at path and atomically
// swaps it in. On any error the currently published set is kept.
func (h *TableHolder) Reload(path string) error {
	set, err := LoadTables(path)
	if err != nil {
		return err
	}
	h.current.Store(set)
	return nil
}

// LoadTables reads a validated TableSet from a YAML file. An empty path
// yields the default tables. Missing sections fall back to defaults so a
// file may override only weights or only thresholds.
func LoadTables(path string) (*TableSet, error) {
	set := &TableSet{
		Weights:    schema.DefaultWeights(),
		Thresholds: schema.DefaultThresholds(),
	}
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table file: %w", err)
	}
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing table file %s: %w", path, err)
	}

	if file.MetricWeights != nil {
		weights := make(schema.WeightTable, len(file.MetricWeights))
		for name, w := range file.MetricWeights {
			weights[schema.MetricName(name)] = w
		}
		set.Weights = weights
	}
	if file.GateThresholds != nil {
		thresholds := make(schema.ThresholdTable, len(file.GateThresholds))
		for name, t := range file.GateThresholds {
			thresholds[schema.MetricName(name)] = t
		}
		set.Thresholds = thresholds
	}

	if err := set.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := set.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
