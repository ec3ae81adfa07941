package ppm

import (
	"strings"

	"github.com/matzehuels/ppmedit/pkg/errors"
)

// Kind selects one of the pixel transforms.
type Kind int

const (
	// KindInvert maps every channel v to 255-v.
	KindInvert Kind = iota + 1
	// KindHighContrast snaps every channel to 0 or 255.
	KindHighContrast
	// KindGreyScale replaces each pixel with its channel average.
	KindGreyScale
)

// String returns the canonical name of the transform.
func (k Kind) String() string {
	switch k {
	case KindInvert:
		return "invert"
	case KindHighContrast:
		return "high-contrast"
	case KindGreyScale:
		return "greyscale"
	default:
		return "unknown"
	}
}

// Flag returns the single-letter command-line flag for the transform.
func (k Kind) Flag() string {
	switch k {
	case KindInvert:
		return "I"
	case KindHighContrast:
		return "H"
	case KindGreyScale:
		return "G"
	default:
		return ""
	}
}

// Kinds lists every supported transform in flag order.
var Kinds = []Kind{KindInvert, KindHighContrast, KindGreyScale}

// ParseKind resolves a transform name or flag letter.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimLeft(strings.TrimSpace(s), "-")) {
	case "i", "invert":
		return KindInvert, nil
	case "h", "high-contrast", "highcontrast", "contrast":
		return KindHighContrast, nil
	case "g", "greyscale", "grayscale", "grey", "gray":
		return KindGreyScale, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown transform %q (must be one of: invert, high-contrast, greyscale)", s)
}

// Apply runs the transform selected by kind on g in place.
func Apply(kind Kind, g Grid) error {
	switch kind {
	case KindInvert:
		return Invert(g)
	case KindHighContrast:
		return HighContrast(g)
	case KindGreyScale:
		return GreyScale(g)
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown transform kind %d", int(kind))
}

// Invert replaces every channel value v with MaxValue-v.
func Invert(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	for _, row := range g {
		for j, v := range row {
			row[j] = MaxValue - v
		}
	}
	return nil
}

// HighContrast sets each channel below HighContrastThreshold to 0 and every
// other channel to MaxValue. Channels of the same pixel are independent.
func HighContrast(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	for _, row := range g {
		for j, v := range row {
			if v < HighContrastThreshold {
				row[j] = 0
			} else {
				row[j] = MaxValue
			}
		}
	}
	return nil
}

// GreyScale sets all three channels of each pixel to floor((r+g+b)/3).
func GreyScale(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	for _, row := range g {
		for j := 0; j+Channels <= len(row); j += Channels {
			avg := (row[j] + row[j+1] + row[j+2]) / Channels
			row[j], row[j+1], row[j+2] = avg, avg, avg
		}
	}
	return nil
}
