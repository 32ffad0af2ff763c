package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/squarify/pkg/io"
	"github.com/matzehuels/squarify/pkg/pipeline"
)

// layoutFlags holds the flags of the layout command.
type layoutFlags struct {
	output      string
	formats     string
	noCache     bool
	concurrency int
}

// layoutCommand creates the layout command for computing treemap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags
	opts := pipeline.Options{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight}

	cmd := &cobra.Command{
		Use:   "layout FILE...",
		Short: "Compute squarified treemap layouts from weight files",
		Long: `Compute squarified treemap layouts from weight files.

Each FILE holds the weights to lay out as JSON, TOML or plain text (one value
per line, optionally "label,value"). The format follows the file extension.
Several files are computed concurrently as a batch.

Output is written next to each input as <name>.layout.<format> unless -o is
given. With several inputs, -o names a directory.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyCanvasConfig(cmd, &opts)
			if !cmd.Flags().Changed("concurrency") {
				flags.concurrency = c.Config.Concurrency
			}
			opts.Formats = parseFormats(flags.formats)
			return c.runLayout(cmd.Context(), args, opts, flags, canvasFlagsSet(cmd))
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, or directory for several inputs")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatJSON, "output formats: json, csv (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", pipeline.DefaultConcurrency, "layouts computed at once")
	addCanvasFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.Epsilon, "epsilon", 0, "relative frame side at or below which the leftover counts as collapsed (default 1e-15)")

	return cmd
}

// addCanvasFlags registers the canvas flags shared by layout and inspect.
func addCanvasFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.X, "x", 0, "canvas origin x")
	cmd.Flags().Float64Var(&opts.Y, "y", 0, "canvas origin y")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
}

// applyCanvasConfig fills canvas size from the config where no flag was given.
func (c *CLI) applyCanvasConfig(cmd *cobra.Command, opts *pipeline.Options) {
	if !cmd.Flags().Changed("width") {
		opts.Width = c.Config.Width
	}
	if !cmd.Flags().Changed("height") {
		opts.Height = c.Config.Height
	}
}

func canvasFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"x", "y", "width", "height"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// loadOptions imports a weight file into a copy of base. A canvas stored in
// the file wins over the config but not over explicit flags.
func loadOptions(path string, base pipeline.Options, canvasFlags bool) (pipeline.Options, error) {
	in, err := pkgio.ImportFile(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := base
	opts.Values = in.Values()
	opts.Labels = in.Labels()
	if in.Canvas != nil && !canvasFlags {
		opts.X, opts.Y = in.Canvas.X, in.Canvas.Y
		opts.Width, opts.Height = in.Canvas.Width, in.Canvas.Height
	}
	return opts, nil
}

// runLayout imports every input, computes the batch and writes the outputs.
func (c *CLI) runLayout(ctx context.Context, inputs []string, base pipeline.Options, flags layoutFlags, canvasFlags bool) error {
	if err := pipeline.ValidateFormats(base.Formats); err != nil {
		return err
	}

	batch := make([]pipeline.Options, len(inputs))
	for i, input := range inputs {
		opts, err := loadOptions(input, base, canvasFlags)
		if err != nil {
			return err
		}
		if len(opts.Values) == 0 {
			printWarning("%s holds no weights", input)
		}
		batch[i] = opts
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %d layout(s)...", len(batch)))
	spinner.Start()

	results, err := runner.ExecuteBatch(ctx, batch, flags.concurrency)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Computed %d layout(s)", len(results)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	batched := len(inputs) > 1
	if batched && flags.output != "" {
		if err := os.MkdirAll(flags.output, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	var written []string
	for i, result := range results {
		printSuccess("Layout complete: %s", inputs[i])
		for _, format := range base.Formats {
			path := outputPath(inputs[i], flags.output, format, batched, len(base.Formats) > 1)
			if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}
			printFile(path)
			written = append(written, path)
		}
		printStats(result.Stats.RectCount, result.Layout.Stats.WorstRatio, result.CacheInfo.LayoutHit)
	}

	if len(written) > 0 && strings.HasSuffix(written[0], "."+pipeline.FormatJSON) {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+written[0])
	}
	return nil
}

// outputPath names the file a format of input is written to.
//
//	weights.txt             -> weights.layout.json
//	-o out.json             -> out.json
//	-o out.json, json+csv   -> out.json, out.csv
//	-o dir, several inputs  -> dir/weights.layout.json
func outputPath(input, output, format string, batched, multiFormat bool) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	switch {
	case output == "":
		return base + ".layout." + format
	case batched:
		return filepath.Join(output, filepath.Base(base)+".layout."+format)
	case multiFormat:
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	default:
		return output
	}
}
