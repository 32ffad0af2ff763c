package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/layout"
	"github.com/matzehuels/squarify/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
	)
	opts := pipeline.Options{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight}

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse the tiles of a layout in a table",
		Long: `Browse the tiles of a layout in a table.

FILE is either a layout written by 'layout -f json' or a weight file, which is
laid out first. The table shows every tile with its position, size and aspect
ratio; tiles far from square are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyCanvasConfig(cmd, &opts)
			l, err := c.loadLayout(cmd.Context(), args[0], opts, noCache, canvasFlagsSet(cmd))
			if err != nil {
				return err
			}
			if plain {
				fmt.Fprintln(stdout, renderRectTable(l))
				return nil
			}
			return runBrowser(cmd.Context(), l)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addCanvasFlags(cmd, &opts)

	return cmd
}

// loadLayout reads a saved layout document, or lays out a weight file.
func (c *CLI) loadLayout(ctx context.Context, path string, base pipeline.Options, noCache, canvasFlags bool) (layout.Layout, error) {
	if l, err := layout.ReadFile(path); err == nil {
		c.Logger.Debug("read layout document", "path", path, "rects", len(l.Rects))
		return l, nil
	}

	opts, err := loadOptions(path, base, canvasFlags)
	if err != nil {
		return layout.Layout{}, err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	c.Logger.Debug("computed layout", "path", path, "rects", len(l.Rects), "cached", cached)
	return l, nil
}

func runBrowser(ctx context.Context, l layout.Layout) error {
	if len(l.Rects) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "layout has no tiles to browse")
	}
	p := tea.NewProgram(NewRectBrowserModel(l), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
