package ppm

import (
	"github.com/matzehuels/ppmedit/pkg/errors"
)

const (
	// Magic is the header token identifying an ASCII PPM file.
	Magic = "P3"

	// MaxValue is the only maximum channel value accepted and emitted.
	MaxValue = 255

	// Channels is the number of channel slots per pixel (red, green, blue).
	Channels = 3

	// HighContrastThreshold splits channels into dark (below) and bright.
	HighContrastThreshold = 128
)

// Fixed messages for contract violations.
const (
	msgNullFile    = "Null file"
	msgNullScanner = "Null scanner"
	msgNullArray   = "Null array"
	msgInvalid     = "Invalid array"
	msgJagged      = "Jagged array"
)

// Grid is a rectangular block of channel values, rows × (cols*3).
type Grid [][]int

// Rows returns the number of pixel rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of pixels per row, derived from row 0.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0]) / Channels
}

// Clone returns a deep copy of g. A nil grid clones to nil.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether g and other have identical shape and values.
// A nil grid only equals another nil grid.
func (g Grid) Equal(other Grid) bool {
	if (g == nil) != (other == nil) || len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Validate checks the shape invariants every consumer relies on, in order:
// absent grid, row-0 width not a multiple of Channels, jagged rows.
func Validate(g Grid) error {
	if g == nil {
		return errors.New(errors.ErrCodeNullArgument, msgNullArray)
	}
	if len(g) == 0 {
		return nil
	}
	width := len(g[0])
	if width%Channels != 0 {
		return errors.New(errors.ErrCodeShapeInvalid, msgInvalid)
	}
	for _, row := range g {
		if len(row) != width {
			return errors.New(errors.ErrCodeJagged, msgJagged)
		}
	}
	return nil
}
