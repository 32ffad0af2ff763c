// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// A pipeline run validates its [Options], computes a squarified treemap of
// the weights, and exports the result in the requested formats. Both stages
// are cached through a [cache.Cache], keyed by the content hash of the
// weights and every option that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Values:  []float64{6, 6, 4, 3, 2, 2, 1},
//	    Width:   600,
//	    Height:  400,
//	    Formats: []string{pipeline.FormatJSON},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run the stages individually:
//
//	l, err := runner.ComputeLayout(ctx, opts)
//	artifacts, err := runner.Export(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/squarify/pkg/cache"
	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/layout"
	"github.com/matzehuels/squarify/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height.
	DefaultHeight = 600.0

	// DefaultConcurrency bounds the number of layouts a batch computes at once.
	DefaultConcurrency = 4
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatJSON, FormatCSV}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input
	Values []float64 `json:"values"`
	Labels []string  `json:"labels,omitempty"`

	// Layout options
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// Epsilon overrides treemap.DefaultEpsilon when positive.
	Epsilon float64 `json:"epsilon,omitempty"`

	// Export options
	Formats []string `json:"formats,omitempty"`

	// Refresh recomputes and overwrites cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed treemap.
	Layout layout.Layout

	// InputHash is the content hash of the weights and labels.
	InputHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RectCount  int
	LayoutTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in the canvas size, formats and logger when unset.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without computing anything. Weight and canvas
// errors carry the same codes as [treemap.Layout].
func (o *Options) Validate() error {
	if err := o.Canvas().Validate(); err != nil {
		return err
	}
	if err := treemap.ValidateWeights(o.Values); err != nil {
		return err
	}
	if len(o.Labels) > len(o.Values) {
		return errs.New(errs.ErrCodeInvalidInput, "got %d labels for %d weights", len(o.Labels), len(o.Values))
	}
	for _, l := range o.Labels {
		if err := errs.ValidateLabel(l); err != nil {
			return err
		}
	}
	if o.Epsilon < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "epsilon must not be negative, got %v", o.Epsilon)
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Canvas returns the canvas described by the options.
func (o *Options) Canvas() treemap.Canvas {
	return treemap.Canvas{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	eps := o.Epsilon
	if eps == 0 {
		eps = treemap.DefaultEpsilon
	}
	return cache.LayoutKeyOpts{
		X:       o.X,
		Y:       o.Y,
		Width:   o.Width,
		Height:  o.Height,
		Epsilon: eps,
	}
}

// ArtifactKeyOpts returns cache key options for an export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, ValidFormats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
