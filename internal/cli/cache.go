package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squarify/internal/config"
	"github.com/matzehuels/squarify/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts",
		Long: `Clear all cached layouts from the file cache.

Entries in a Redis cache expire on their own and are not touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear()
		},
	}
}

func (c *CLI) runCacheClear() error {
	if c.Config.Cache.Backend != config.CacheFile {
		printInfo("Cache backend is %s, nothing to clear", c.Config.Cache.Backend)
		return nil
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		return fmt.Errorf("no cache directory available")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	count, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cleared %d cached entries", count)
	printDetail("Directory: %s", fc.Dir())
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Dir == "" {
				return fmt.Errorf("no cache directory available")
			}
			fmt.Fprintln(stdout, c.Config.Cache.Dir)
			return nil
		},
	}
}
