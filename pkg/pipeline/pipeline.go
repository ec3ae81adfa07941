// Package pipeline runs the parse → transform → serialize chain for one image.
//
// The CLI and tests share this package so stage ordering, logging, caching and
// instrumentation behave the same everywhere.
//
// # Stages
//
//  1. Parse: decode P3 text into a [ppm.Grid]
//  2. Transform: apply one [ppm.Kind] in place
//  3. Serialize: encode the grid back to canonical P3 text
//
// Each stage is available on its own ([Parse], [Transform], [Serialize]);
// [Runner.Execute] chains them and consults the artifact cache first.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, in, out, pipeline.Options{Kind: ppm.KindInvert})
//	if err != nil {
//	    return err
//	}
//	logger.Info("done", "rows", result.Rows, "cached", result.CacheHit)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ppmedit/pkg/cache"
	"github.com/matzehuels/ppmedit/pkg/errors"
	"github.com/matzehuels/ppmedit/pkg/ppm"
)

// Options configures a pipeline run.
type Options struct {
	// Kind selects the transform. Required.
	Kind ppm.Kind

	// Refresh skips the cache lookup. The fresh output is still stored.
	Refresh bool

	// Logger receives progress messages. Defaults to the runner's logger.
	Logger *log.Logger
}

// Validate checks that the options describe a runnable pipeline.
func (o *Options) Validate() error {
	switch o.Kind {
	case ppm.KindInvert, ppm.KindHighContrast, ppm.KindGreyScale:
		return nil
	case 0:
		return errors.New(errors.ErrCodeInvalidInput, "transform is required")
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown transform kind %d", int(o.Kind))
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns the cache key options for this run.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Transform: o.Kind.String(),
		Version:   cache.ArtifactVersion,
	}
}

// Result describes a completed run.
type Result struct {
	// Rows and Cols are the image dimensions in pixels.
	Rows int
	Cols int

	// InputHash is the SHA-256 of the raw input bytes.
	InputHash string

	// Output is the serialized image that was written.
	Output []byte

	Stats Stats

	// CacheHit reports that Output came from the cache and no stage ran.
	CacheHit bool
}

// Stats holds per-stage timings. All zero on a cache hit.
type Stats struct {
	ParseTime     time.Duration
	TransformTime time.Duration
	SerializeTime time.Duration
}

// Total returns the summed stage time.
func (s Stats) Total() time.Duration {
	return s.ParseTime + s.TransformTime + s.SerializeTime
}
