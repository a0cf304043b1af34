// Package obstacles finds short orthogonal paths around shape bounds by
// propagating hop distances over a transient uniform grid.
package obstacles

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid obstacle grid config")

// Config defines the grid parameters for obstacle avoidance.
type Config struct {
	CellSize     float64 // Edge length of a grid cell in document units
	SmallMargin  int     // First pass: cells around the endpoints' bounding box
	LargeMargin  int     // Second pass: cells around the endpoints' bounding box
	RegionMargin float64 // Units added around both end shapes to size the grid
	MaxCells     int     // Upper bound on cols*rows; the cell size grows to fit
	Clearance    float64 // Minimum gap kept between a path and an obstacle
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		CellSize:     8,
		SmallMargin:  2,
		LargeMargin:  12,
		RegionMargin: 80,
		MaxCells:     250000,
		Clearance:    1,
	}
}

// Validate checks that sizes are positive and margins escalate.
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %g", ErrInvalidConfig, c.CellSize)
	case c.SmallMargin < 0:
		return fmt.Errorf("%w: small margin must not be negative, got %d", ErrInvalidConfig, c.SmallMargin)
	case c.LargeMargin <= c.SmallMargin:
		return fmt.Errorf("%w: large margin %d must exceed small margin %d", ErrInvalidConfig, c.LargeMargin, c.SmallMargin)
	case c.RegionMargin < 0:
		return fmt.Errorf("%w: region margin must not be negative, got %g", ErrInvalidConfig, c.RegionMargin)
	case c.MaxCells < 4:
		return fmt.Errorf("%w: max cells must be at least 4, got %d", ErrInvalidConfig, c.MaxCells)
	case c.Clearance < 0:
		return fmt.Errorf("%w: clearance must not be negative, got %g", ErrInvalidConfig, c.Clearance)
	}
	return nil
}

// Cell addresses one grid cell.
type Cell struct {
	Col, Row int
}

// span is an inclusive range of cells.
type span struct {
	minCol, minRow int
	maxCol, maxRow int
}

func (s span) contains(c Cell) bool {
	return c.Col >= s.minCol && c.Col <= s.maxCol &&
		c.Row >= s.minRow && c.Row <= s.maxRow
}

func (s span) grow(n int) span {
	return span{s.minCol - n, s.minRow - n, s.maxCol + n, s.maxRow + n}
}
