package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend != cache.BackendFile {
				return fmt.Errorf("cache clear only supports the file backend (configured: %s)", c.Config.Cache.Backend)
			}
			fc, err := cache.NewFileCache(c.Config.Cache.Dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Cache cleared")
			printDetail(cmd.OutOrStdout(), "Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Dir == "" {
				return fmt.Errorf("no cache directory configured")
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Config.Cache.Dir)
			return nil
		},
	}
}
