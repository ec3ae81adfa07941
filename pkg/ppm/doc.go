// Package ppm parses, transforms and serializes ASCII PPM ("P3") images.
//
// The package is the core of ppmedit. It never prints, logs or opens files:
// callers hand it an already-open token source or writer and own every
// handle.
//
// # Data Model
//
// A [Grid] holds rows of channel values. Row i, columns 3k, 3k+1 and 3k+2 are
// the red, green and blue channels of pixel (i, k):
//
//	g := ppm.Grid{
//	    {255, 0, 0, 0, 255, 0}, // red, green
//	    {0, 0, 255, 9, 9, 9},   // blue, dark grey
//	}
//
// A nil Grid means "no data". A non-nil Grid with zero rows is a valid,
// empty image.
//
// # Stages
//
//   - [Parse]: token stream → Grid, with strict header and range checks
//   - [Invert], [HighContrast], [GreyScale]: in-place pixel transforms
//   - [Write]: Grid → canonical P3 text
//
// # Errors
//
// Every failure is a *errors.Error from pkg/errors. Three outcomes matter:
//
//   - Malformed input (code MALFORMED) is expected and recoverable. Parse
//     returns it when the content is not a valid P3 image.
//   - Contract violations (NULL_ARGUMENT, SHAPE_INVALID, JAGGED) mean the
//     caller passed something the API forbids. Their messages are fixed:
//     "Null file", "Null scanner", "Null array", "Invalid array", "Jagged array".
//   - I/O failures (IO_ERROR) come from the underlying reader or writer.
//
// Use [Classify] to switch on the outcome.
//
// Shape checks always run in the same order (absent, shape, jagged) so a grid
// that breaks several rules reports the same error every time.
package ppm
