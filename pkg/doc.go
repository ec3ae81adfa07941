// Package pkg provides the core libraries for the ppmedit image editor.
//
// # Overview
//
// ppmedit reads a plain-text PPM ("P3") image, applies one pixel transform
// and writes the result back as canonical P3 text. The pkg directory is
// organized into the following areas:
//
//  1. [ppm] - Domain logic (grid model, parsing, transforms, serialization)
//  2. [pipeline] - Orchestration (parse → transform → serialize)
//  3. [cache] - Artifact caching (file, Redis, null backends)
//  4. [errors] - Structured error codes shared by every layer
//  5. [observability] - Hooks for timing and cache instrumentation
//
// # Architecture
//
// The typical data flow through ppmedit:
//
//	P3 text (file or stream)
//	         ↓
//	    [ppm.Parse] (validate header + channel values)
//	         ↓
//	    [ppm.Apply] (Invert, HighContrast or GreyScale in place)
//	         ↓
//	    [ppm.Write] (canonical P3 text)
//
// # Quick Start
//
//	g, err := ppm.Parse(ppm.NewTokenizer(in))
//	if err != nil {
//	    return err
//	}
//	if err := ppm.GreyScale(g); err != nil {
//	    return err
//	}
//	return ppm.Write(out, g)
//
// With caching and instrumentation:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, in, out, pipeline.Options{Kind: ppm.KindInvert})
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/ppm/...                # Specific package
//	go test -run Example ./pkg/ppm       # Examples only
//	PPMEDIT_TEST_REDIS=localhost:6379 go test ./pkg/cache  # Include Redis tests
//
// [ppm]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/ppm
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/observability
// [ppm.Parse]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/ppm#Parse
// [ppm.Apply]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/ppm#Apply
// [ppm.Write]: https://pkg.go.dev/github.com/matzehuels/ppmedit/pkg/ppm#Write
package pkg
