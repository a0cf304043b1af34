// Package config holds the routing options shared by documents, scene
// files and the command line.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"linkroute/obstacles"
	"linkroute/validation"
)

// ErrInvalid is returned by Validate for out of range options.
var ErrInvalid = errors.New("invalid options")

// Options configures routing for a document.
type Options struct {
	EndSegmentLength  float64 `yaml:"end_segment_length"`  // default length of a port's end segment
	EndSegmentSpacing float64 `yaml:"end_segment_spacing"` // added per stacked sibling port
	PenWidth          float64 `yaml:"pen_width"`
	CyclePolicy       string  `yaml:"cycle_policy"` // all, not-directed, not-undirected, tree

	CellSize     float64 `yaml:"cell_size"`
	SmallMargin  int     `yaml:"small_margin"`
	LargeMargin  int     `yaml:"large_margin"`
	RegionMargin float64 `yaml:"region_margin"`
	MaxCells     int     `yaml:"max_cells"`
	Clearance    float64 `yaml:"clearance"`
}

// Default returns the options used when nothing is configured.
func Default() Options {
	g := obstacles.DefaultConfig()
	return Options{
		EndSegmentLength:  10,
		EndSegmentSpacing: 8,
		PenWidth:          1,
		CyclePolicy:       validation.CycleAll.String(),
		CellSize:          g.CellSize,
		SmallMargin:       g.SmallMargin,
		LargeMargin:       g.LargeMargin,
		RegionMargin:      g.RegionMargin,
		MaxCells:          g.MaxCells,
		Clearance:         g.Clearance,
	}
}

// Parse reads YAML options on top of the defaults and validates them.
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Load reads options from a YAML file.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options: %w", err)
	}
	return Parse(data)
}

// Validate checks lengths and the grid parameters.
func (o Options) Validate() error {
	switch {
	case o.EndSegmentLength < 0:
		return fmt.Errorf("%w: end segment length must not be negative, got %g", ErrInvalid, o.EndSegmentLength)
	case o.EndSegmentSpacing < 0:
		return fmt.Errorf("%w: end segment spacing must not be negative, got %g", ErrInvalid, o.EndSegmentSpacing)
	case o.PenWidth < 0:
		return fmt.Errorf("%w: pen width must not be negative, got %g", ErrInvalid, o.PenWidth)
	}
	if _, err := o.Cycles(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := o.Grid().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Grid returns the obstacle grid parameters.
func (o Options) Grid() obstacles.Config {
	return obstacles.Config{
		CellSize:     o.CellSize,
		SmallMargin:  o.SmallMargin,
		LargeMargin:  o.LargeMargin,
		RegionMargin: o.RegionMargin,
		MaxCells:     o.MaxCells,
		Clearance:    o.Clearance,
	}
}

// Cycles returns the parsed cycle policy.
func (o Options) Cycles() (validation.CyclePolicy, error) {
	return validation.ParseCyclePolicy(o.CyclePolicy)
}
