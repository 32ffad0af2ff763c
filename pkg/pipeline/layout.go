package pipeline

import (
	"bytes"
	"fmt"

	pkgio "github.com/matzehuels/squarify/pkg/io"
	"github.com/matzehuels/squarify/pkg/layout"
	"github.com/matzehuels/squarify/pkg/treemap"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout runs the treemap engine for opts without caching.
// Options are assumed to have defaults applied.
func ComputeLayout(opts Options) (layout.Layout, error) {
	var topts []treemap.Option
	if opts.Epsilon > 0 {
		topts = append(topts, treemap.WithEpsilon(opts.Epsilon))
	}

	c := opts.Canvas()
	rects, err := treemap.Layout(opts.Values, c, topts...)
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.FromRects(rects, c, opts.Labels), nil
}

// =============================================================================
// Export
// =============================================================================

// ExportLayout encodes l in every requested format.
func ExportLayout(l layout.Layout, formats []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := exportFormat(l, format)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

func exportFormat(l layout.Layout, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.Write(l, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
