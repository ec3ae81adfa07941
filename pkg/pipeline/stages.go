package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/ppmedit/pkg/observability"
	"github.com/matzehuels/ppmedit/pkg/ppm"
)

// Parse decodes data as a P3 image.
func Parse(ctx context.Context, data []byte) (ppm.Grid, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(data))
	start := time.Now()

	g, err := ppm.Parse(ppm.NewTokenizer(bytes.NewReader(data)))

	hooks.OnParseComplete(ctx, g.Rows(), g.Cols(), time.Since(start), err)
	return g, err
}

// Transform applies kind to g in place.
func Transform(ctx context.Context, g ppm.Grid, kind ppm.Kind) error {
	hooks := observability.Pipeline()
	hooks.OnTransformStart(ctx, kind.String())
	start := time.Now()

	err := ppm.Apply(kind, g)

	hooks.OnTransformComplete(ctx, kind.String(), time.Since(start), err)
	return err
}

// Serialize encodes g as canonical P3 text.
func Serialize(ctx context.Context, g ppm.Grid) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnSerializeStart(ctx)
	start := time.Now()

	var buf bytes.Buffer
	if len(g) > 0 {
		buf.Grow(len(g) * (len(g[0])*4 + 1))
	}
	err := ppm.Write(&buf, g)
	if err != nil {
		hooks.OnSerializeComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}

	hooks.OnSerializeComplete(ctx, buf.Len(), time.Since(start), nil)
	return buf.Bytes(), nil
}
