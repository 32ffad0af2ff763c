// Package pkg provides the libraries behind squarify, a squarified treemap
// layout tool.
//
// # Overview
//
// Squarify partitions a rectangle into one tile per weight. Every tile's
// area is proportional to its weight and tiles are kept as close to square
// as the greedy squarified algorithm allows. The pkg directory is organized
// into three areas:
//
//  1. [treemap] - The layout engine (pure, no I/O, no logging)
//  2. [layout], [io] - Serializable layout documents and weight/export formats
//  3. [pipeline], [cache], [storage], [api] - Orchestration and infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	weights file (json, toml, txt) or POST /v1/layouts
//	         ↓
//	    [io] package (import weights, labels, canvas)
//	         ↓
//	    [pipeline] package (validate, cache lookup)
//	         ↓
//	    [treemap] package (squarified layout)
//	         ↓
//	    [layout] document → JSON / CSV, [storage]
//
// # Quick Start
//
// Lay out weights directly:
//
//	import "github.com/matzehuels/squarify/pkg/treemap"
//
//	rects, err := treemap.Layout([]float64{6, 6, 4, 3, 2, 2, 1},
//	    treemap.Canvas{Width: 6, Height: 4})
//
// Or through the cached pipeline shared by the CLI and the HTTP API:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Values:  []float64{6, 6, 4, 3, 2, 2, 1},
//	    Formats: []string{pipeline.FormatCSV},
//	})
//
// # Error Handling
//
// Errors carry a code from [errors]: INVALID_CANVAS, INVALID_WEIGHTS and
// friends for bad input, NOT_FOUND for unknown stored layouts. The HTTP API
// maps codes to status codes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/treemap/...      # Layout engine only
//	go test -run Example ./pkg/... # Examples only
//	go test -bench . ./pkg/treemap # Benchmarks
//
// [treemap]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/treemap
// [layout]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/storage
// [api]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/squarify/pkg/errors
package pkg
