package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ppmedit/pkg/cache"
	"github.com/matzehuels/ppmedit/pkg/errors"
	"github.com/matzehuels/ppmedit/pkg/observability"
	"github.com/matzehuels/ppmedit/pkg/ppm"
)

const keyTypeArtifact = "artifact"

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state, so one Runner may serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long stored outputs live. Zero means no expiry.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// DefaultKeyer and a nil logger uses log.Default(). TTL starts at
// cache.TTLArtifact.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute reads the whole of in, transforms it and writes the result to out.
//
// On a cache hit the stored output is written without parsing. Cancellation of
// ctx is checked between stages; nothing is written to out unless every stage
// succeeds.
func (r *Runner) Execute(ctx context.Context, in io.Reader, out io.Writer, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	opts.SetDefaults()
	logger := opts.Logger

	if in == nil || out == nil {
		return nil, errors.New(errors.ErrCodeNullArgument, "Null file")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read input")
	}

	result := &Result{InputHash: cache.Hash(data)}
	key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, logger); ok {
			result.Output = cached.output
			result.Rows, result.Cols = cached.header.Rows, cached.header.Cols
			result.CacheHit = true
			logger.Debug("serving cached output", "transform", opts.Kind, "hash", result.InputHash[:12])
			if err := r.emit(out, cached.output); err != nil {
				return nil, err
			}
			return result, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	g, err := Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(start)
	result.Rows, result.Cols = g.Rows(), g.Cols()
	logger.Debug("parsed image",
		"rows", result.Rows,
		"cols", result.Cols,
		"duration", result.Stats.ParseTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	if err := Transform(ctx, g, opts.Kind); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	result.Stats.TransformTime = time.Since(start)
	logger.Debug("applied transform",
		"transform", opts.Kind,
		"duration", result.Stats.TransformTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	output, err := Serialize(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	result.Stats.SerializeTime = time.Since(start)
	result.Output = output
	logger.Debug("serialized image",
		"bytes", len(output),
		"duration", result.Stats.SerializeTime)

	if err := r.Cache.Set(ctx, key, output, r.TTL); err != nil {
		logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(output))
	}

	if err := r.emit(out, output); err != nil {
		return nil, err
	}
	return result, nil
}

type cachedArtifact struct {
	output []byte
	header ppm.Header
}

// lookup returns a cached artifact whose header still validates. Backend
// errors and unreadable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (cachedArtifact, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		return cachedArtifact{}, false
	}

	h, err := ppm.ValidateHeader(ppm.NewTokenizer(bytes.NewReader(data)))
	if err != nil {
		logger.Debug("discarding invalid cache entry", "error", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		return cachedArtifact{}, false
	}

	observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
	return cachedArtifact{output: data, header: h}, true
}

func (r *Runner) emit(out io.Writer, data []byte) error {
	if _, err := out.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write output")
	}
	return nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
