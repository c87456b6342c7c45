// Package chart builds renderer-agnostic chart descriptions from
// aggregated severity-band shares. It owns the presentation constants
// (label sets, the severity color ramp, the categorical group palette)
// and the branching that adapts labeling and shape to the index scale
// and chart geometry.
package chart

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Geometry selects the chart shape aggregated rows are mapped to.
type Geometry string

// Supported chart geometries.
const (
	// GeometryBar renders one horizontal stacked bar per group.
	GeometryBar Geometry = "bar"

	// GeometryLine renders one line per group across the band axis.
	GeometryLine Geometry = "line"
)

// IndexType identifies the severity index being charted and selects the
// band label set. Values other than the known constants are valid and
// take the generic label branch; unrecognized strings are deliberately
// not an error.
type IndexType string

// Known index types.
const (
	// IndexMSNI is the multi-sector needs index; bands are labeled with
	// their numeric value, e.g. "Minimal (1)".
	IndexMSNI IndexType = "msni"

	// IndexLSG is a living-standards-gap index; bands take the generic
	// label set.
	IndexLSG IndexType = "lsg"
)

// Config controls how aggregated rows become a chart description.
// Config is caller-constructed and read-only to the builder; the
// builder never mutates caller-owned slices.
type Config struct {
	// Scale is the index scale: 4 emits bands 1-4, 5 additionally emits
	// the "4+" overflow band.
	Scale int `yaml:"index_max" validate:"required,oneof=4 5"`

	// IndexType selects the band label set. Unrecognized values fall
	// back to the generic labels.
	IndexType IndexType `yaml:"index_type,omitempty"`

	// Geometry selects the chart shape.
	Geometry Geometry `yaml:"geometry" validate:"required,oneof=bar line"`

	// Title is an optional chart title.
	Title string `yaml:"title,omitempty"`

	// GroupColumn optionally names the group column; it is only used to
	// derive the group axis title.
	GroupColumn string `yaml:"group_column,omitempty"`

	// GroupOrder optionally fixes the category order of the group axis.
	// Data groups absent from the list are excluded; listed groups
	// without data remain as empty categories. When nil, groups are
	// ordered alphabetically.
	GroupOrder []string `yaml:"group_order,omitempty"`

	// GroupLabels optionally relabels the group axis positionally, in
	// the same order as the resolved group categories. A length
	// mismatch is reported as a warning on the description.
	GroupLabels []string `yaml:"group_labels,omitempty"`
}

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("chart configuration validation failed: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with the five-band MSNI bar chart
// defaults.
func DefaultConfig() Config {
	return Config{
		Scale:     5,
		IndexType: IndexMSNI,
		Geometry:  GeometryBar,
	}
}

// ParseConfig decodes a YAML chart configuration and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode chart configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
